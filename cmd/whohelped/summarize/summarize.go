package summarize

import (
	"context"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/report"
)

// Command summarizes contribution reports
type Command struct {
	// Arguments
	Files []string

	// Flags
	By     []string
	Roles  []string
	Format string

	Out io.Writer
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "summarize <contribution-report>...",
		Short: "Summarize contribution reports",
		Long: `Count the rows of one or more CSV contribution reports, grouped by
the values of some columns (Organization unless --by is given).

Example:
  goal-tools who-helped summarize contributions.csv
  goal-tools who-helped summarize --by Team --by Organization --role reviewer contributions.csv`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return common.ValidateFormat(c.Format)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Files = args
			if c.Out == nil {
				c.Out = os.Stdout
			}
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringArrayVarP(&c.By, "by", "b", nil, "Column to summarize by (may be repeated)")
	cmd.Flags().StringArrayVar(&c.Roles, "role", nil, "Only count rows with this role (may be repeated)")
	cmd.Flags().StringVarP(&c.Format, "format", "f", common.FormatTable, "Output format (table or csv)")
	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	summary, err := report.Summarize(report.ReadContributions(c.Files...), c.By, c.Roles)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(summary))
	for _, count := range summary {
		rows = append(rows, append(count.Values, strconv.Itoa(count.Count)))
	}
	return common.WriteRows(c.Out, c.Format, report.SummaryColumns(c.By), rows)
}
