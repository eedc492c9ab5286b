package repos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/governance"
	"github.com/bjulian5/goaltools/internal/ui"
)

// Command lists the repositories of a team
type Command struct {
	// Arguments
	Team string

	// Flags
	All  bool
	Tree bool

	// Clients (can be mocked in tests)
	Index *governance.Index
	Out   io.Writer

	// SelectTeam picks a team interactively; nil when stdin is not a terminal
	SelectTeam func(names []string, preview func(string) string) (string, error)
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "repos [team]",
		Short: "List the repositories of a team",
		Long: `List the repositories owned by a team. Team names are matched exactly,
then case-insensitively.

Without a team name, a team is picked interactively when running in a
terminal. Use --all to list every repository.

Example:
  goal-tools governance repos Oslo
  goal-tools governance repos oslo --tree
  goal-tools governance repos --all`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			c.Index, err = common.LoadGovernance(cmd.Context(), cfg)
			c.Out = os.Stdout
			if ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) {
				c.SelectTeam = ui.SelectTeam
			}
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				c.Team = args[0]
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.All, "all", false, "List the repositories of every team")
	cmd.Flags().BoolVar(&c.Tree, "tree", false, "Show the team's deliverables as a tree")
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	if c.All {
		for repo := range c.Index.Repos() {
			fmt.Fprintln(c.Out, repo)
		}
		return nil
	}

	if c.Team == "" {
		if c.SelectTeam == nil {
			return errors.New("a team name is required when not running in a terminal")
		}
		name, err := c.SelectTeam(c.Index.Teams(), c.preview)
		if err != nil {
			return fmt.Errorf("failed to select team: %w", err)
		}
		if name == "" {
			return nil
		}
		c.Team = name
	}

	if c.Tree {
		team, err := c.Index.Team(c.Team)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.Out, ui.RenderTeamTree(c.Team, team))
		return nil
	}

	repos, err := c.Index.ReposForTeam(c.Team)
	if err != nil {
		return err
	}
	for repo := range repos {
		fmt.Fprintln(c.Out, repo)
	}
	return nil
}

func (c *Command) preview(name string) string {
	team, err := c.Index.Team(name)
	if err != nil {
		return err.Error()
	}
	return ui.FormatTeamPreview(name, team)
}
