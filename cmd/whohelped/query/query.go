package query

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/internal/cache"
	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/gerrit"
	"github.com/bjulian5/goaltools/internal/report"
)

// ReviewQuerier runs a review search
type ReviewQuerier interface {
	Query(ctx context.Context, query string) iter.Seq2[*gerrit.Review, error]
}

// Command lists the contributors to every review matching a query
type Command struct {
	// Arguments
	Query string

	// Flags
	Format  string
	NoTeams bool

	// Clients (can be mocked in tests)
	Reviews ReviewQuerier
	Teams   report.TeamLookup
	Out     io.Writer

	store *cache.Cache
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "query <query>...",
		Short: "List the contributors to the reviews matching a query",
		Long: `List everyone who took part in the reviews matching a review service
search query. The arguments are joined with spaces to form the query.

Example:
  goal-tools who-helped query project:openstack/oslo.config status:merged
  goal-tools who-helped query -f csv 'topic:python3-first'`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := common.ValidateFormat(c.Format); err != nil {
				return err
			}
			return c.init(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Query = strings.Join(args, " ")
			defer c.close()
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&c.Format, "format", "f", common.FormatTable, "Output format (table or csv)")
	cmd.Flags().BoolVar(&c.NoTeams, "no-teams", false, "Do not look up the team owning each project")
	parent.AddCommand(cmd)
}

func (c *Command) init(ctx context.Context) error {
	cfg, err := common.LoadConfig()
	if err != nil {
		return err
	}
	factory, store, err := common.InitReviewFactory(cfg)
	if err != nil {
		return err
	}
	c.Reviews, c.store = factory, store

	if !c.NoTeams {
		idx, err := common.LoadGovernance(ctx, cfg)
		if err != nil {
			c.close()
			return err
		}
		c.Teams = idx
	}
	c.Out = os.Stdout
	return nil
}

func (c *Command) close() {
	if c.store != nil {
		c.store.Close()
		c.store = nil
	}
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	var rows [][]string
	for review, err := range c.Reviews.Query(ctx, c.Query) {
		if err != nil {
			return fmt.Errorf("failed to query reviews: %w", err)
		}
		for _, row := range report.ContributorRows(review, c.Teams) {
			rows = append(rows, row.Values(report.Columns))
		}
	}
	return common.WriteRows(c.Out, c.Format, report.Columns, rows)
}
