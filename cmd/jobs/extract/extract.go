package extract

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/zuul"
)

// Command shows the project settings to move into a repository
type Command struct {
	// Arguments
	Repo   string
	Branch string

	// Flags
	ProjectConfigDir string
	ZuulJobsDir      string

	Out    io.Writer
	Logger *zap.Logger
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "extract <repo> [branch]",
		Short: "Show the project settings to extract for a repository",
		Long: `Show the central CI settings of a repository that can move into the
repository itself. Templates that must stay in the central configuration are
dropped. When a branch is given, only the jobs that run on that branch are
kept and their branch filters are removed.

The output is a list holding one project record without a name, ready to be
copied into the repository's configuration.

Example:
  goal-tools jobs extract openstack/oslo.config
  goal-tools jobs extract openstack/oslo.config stable/rocky`,
		Args: cobra.RangeArgs(1, 2),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			if c.ProjectConfigDir == "" {
				c.ProjectConfigDir = cfg.Jobs.ProjectConfigDir
			}
			if c.ZuulJobsDir == "" {
				c.ZuulJobsDir = cfg.Jobs.ZuulJobsDir
			}
			c.Out = os.Stdout
			c.Logger = common.Logger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Repo = args[0]
			if len(args) > 1 {
				c.Branch = args[1]
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&c.ProjectConfigDir, "project-config-dir", "", "Location of the project-config repository")
	cmd.Flags().StringVar(&c.ZuulJobsDir, "zuul-jobs-dir", "", "Location of the openstack-zuul-jobs repository")
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	central := zuul.Central{ProjectConfigDir: c.ProjectConfigDir, ZuulJobsDir: c.ZuulJobsDir}
	project, defs, err := central.Load(c.Repo, c.Logger)
	if err != nil {
		return err
	}

	project, err = zuul.ExtractTemplates(project, defs, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to extract templates: %w", err)
	}
	if c.Branch != "" {
		project, err = zuul.FilterJobsOnBranch(project, c.Branch, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to filter jobs on %s: %w", c.Branch, err)
		}
	}

	fmt.Fprintln(c.Out)
	return zuul.EncodeProjects(c.Out, project.Without("name"))
}
