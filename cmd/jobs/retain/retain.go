package retain

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

// Command shows the project settings to keep in the central configuration
type Command struct {
	// Arguments
	Repo string

	// Flags
	ProjectConfigDir string
	ZuulJobsDir      string

	Out    io.Writer
	Logger *zap.Logger
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "retain <repo>",
		Short: "Show the project settings to keep in project-config",
		Long: `Show the central CI settings of a repository once everything that can
move in-tree has been extracted: the templates that must stay (always
including system-required) and the jobs that only run on master.

Example:
  goal-tools jobs retain openstack/oslo.config`,
		Args: cobra.ExactArgs(1),
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

	project, err = zuul.RetainTemplates(project, defs, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to find templates to retain: %w", err)
	}
	project, err = zuul.RetainJobs(project, c.Logger)
	if err != nil {
		return fmt.Errorf("failed to find jobs to retain: %w", err)
	}

	fmt.Fprintln(c.Out)
	return zuul.EncodeProjects(c.Out, project)
}
