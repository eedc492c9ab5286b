package whohelped

import (
	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/cmd/whohelped/contributors"
	"github.com/bjulian5/goaltools/cmd/whohelped/query"
	"github.com/bjulian5/goaltools/cmd/whohelped/summarize"
)

// Command is the parent command for the contribution report subcommands
type Command struct{}

// Register registers the who-helped command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "who-helped",
		Short: "Contribution reports",
		Long:  `Commands for reporting who took part in a set of code reviews.`,
	}

	(&contributors.Command{}).Register(cmd)
	(&query.Command{}).Register(cmd)
	(&summarize.Command{}).Register(cmd)

	parent.AddCommand(cmd)
}
