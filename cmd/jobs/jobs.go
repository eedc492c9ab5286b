package jobs

import (
	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/cmd/jobs/addpy3train"
	"github.com/bjulian5/goaltools/cmd/jobs/extract"
	"github.com/bjulian5/goaltools/cmd/jobs/retain"
)

// Command is the parent command for the CI configuration subcommands
type Command struct{}

// Register registers the jobs command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "CI configuration tools",
		Long: `Commands for splitting a repository's CI settings between the central
configuration and the repository itself, and for migrating in-tree settings
to the Python 3 Train templates.`,
	}

	(&extract.Command{}).Register(cmd)
	(&retain.Command{}).Register(cmd)
	(&addpy3train.Command{}).Register(cmd)

	parent.AddCommand(cmd)
}
