package governance

import (
	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/cmd/governance/owner"
	"github.com/bjulian5/goaltools/cmd/governance/repos"
	"github.com/bjulian5/goaltools/cmd/governance/teams"
)

// Command is the parent command for the governance subcommands
type Command struct{}

// Register registers the governance command and all subcommands
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "governance",
		Short: "Project ownership",
		Long: `Commands for looking up teams, their deliverables and repositories in the
governance documents.`,
	}

	(&teams.Command{}).Register(cmd)
	(&repos.Command{}).Register(cmd)
	(&owner.Command{}).Register(cmd)

	parent.AddCommand(cmd)
}
