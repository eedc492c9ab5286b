package owner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/governance"
	"github.com/bjulian5/goaltools/internal/ui"
)

// Command shows which team owns repositories
type Command struct {
	// Arguments
	Repos []string

	// Clients (can be mocked in tests)
	Index *governance.Index
	Out   io.Writer
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "owner <repo>...",
		Short: "Show the team owning repositories",
		Long: `Show the team and deliverable owning each repository, with the union of
the team and deliverable tags.

Example:
  goal-tools governance owner openstack/oslo.config
  goal-tools governance owner openstack/nova openstack/governance`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			c.Index, err = common.LoadGovernance(cmd.Context(), cfg)
			c.Out = os.Stdout
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Repos = args
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	found := 0
	for i, repo := range c.Repos {
		info, ok := c.Index.RepoInfo(repo)
		if !ok || c.Index.RepoOwner(repo) == "" {
			ui.Warningf("%s is not owned by any team", repo)
			continue
		}
		if i > 0 {
			fmt.Fprintln(c.Out)
		}
		fmt.Fprintln(c.Out, ui.FormatRepoInfo(repo, info, c.Index.RepoTags(repo)))
		found++
	}
	if found == 0 {
		return fmt.Errorf("no owner found for %d repositories", len(c.Repos))
	}
	return nil
}
