package teams

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/governance"
	"github.com/bjulian5/goaltools/internal/ui"
)

// Command lists the teams in the governance documents
type Command struct {
	// Flags
	Format string

	// Clients (can be mocked in tests)
	Index *governance.Index
	Out   io.Writer
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List the teams",
		Long: `List every team with the number of deliverables and repositories it owns.

Example:
  goal-tools governance teams
  goal-tools governance teams -f csv`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := common.ValidateFormat(c.Format); err != nil {
				return err
			}
			cfg, err := common.LoadConfig()
			if err != nil {
				return err
			}
			c.Index, err = common.LoadGovernance(cmd.Context(), cfg)
			c.Out = os.Stdout
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Format, "format", "f", common.FormatTable, "Output format (table or csv)")
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	var rows [][]string
	for _, name := range c.Index.Teams() {
		team, err := c.Index.Team(name)
		if err != nil {
			return fmt.Errorf("failed to load team %s: %w", name, err)
		}
		repos := 0
		for _, deliverable := range team.Deliverables {
			repos += len(deliverable.Repos)
		}
		rows = append(rows, []string{name, strconv.Itoa(len(team.Deliverables)), strconv.Itoa(repos)})
	}
	headers := []string{"Team", "Deliverables", "Repositories"}
	if c.Format == common.FormatTable {
		_, err := fmt.Fprintln(c.Out, ui.RenderSimpleTable(headers, rows))
		return err
	}
	return common.WriteRows(c.Out, c.Format, headers, rows)
}
