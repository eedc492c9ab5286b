package contributors

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjulian5/goaltools/internal/cache"
	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/gerrit"
	"github.com/bjulian5/goaltools/internal/report"
)

// ReviewFetcher loads a review by id
type ReviewFetcher interface {
	Fetch(ctx context.Context, id string) (*gerrit.Review, error)
}

// Command lists the contributors to the reviews named in review list files
type Command struct {
	// Arguments
	ReviewLists []string

	// Flags
	Format  string
	NoTeams bool

	// Clients (can be mocked in tests)
	Reviews ReviewFetcher
	Teams   report.TeamLookup
	Out     io.Writer
	Logger  *zap.Logger

	store *cache.Cache
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "contributors <review-list>...",
		Short: "List the contributors to a set of reviews",
		Long: `List everyone who took part in the reviews named in one or more
review list files.

A review list file holds one review id or review URL per line. Blank lines
and lines starting with # are ignored. Merged reviews are cached.

Example:
  goal-tools who-helped contributors reviews.txt
  goal-tools who-helped contributors --format csv reviews.txt > contributions.csv`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := common.ValidateFormat(c.Format); err != nil {
				return err
			}
			return c.init(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.ReviewLists = args
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
	c.Logger = common.Logger()
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
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ids, err := gerrit.ParseReviewLists(c.ReviewLists...)
	if err != nil {
		return err
	}

	var rows [][]string
	for id := range report.Unique(slices.Values(ids)) {
		logger.Debug("fetching review", zap.String("id", id))
		review, err := c.Reviews.Fetch(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch review %s: %w", id, err)
		}
		for _, row := range report.ContributorRows(review, c.Teams) {
			rows = append(rows, row.Values(report.Columns))
		}
	}

	return common.WriteRows(c.Out, c.Format, report.Columns, rows)
}
