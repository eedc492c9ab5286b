package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/goaltools/cmd/governance"
	"github.com/bjulian5/goaltools/cmd/jobs"
	"github.com/bjulian5/goaltools/cmd/whohelped"
	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/ui"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "goal-tools",
	Short: "Governance and release goal tooling",
	Long: `goal-tools reports on code review participation, answers questions about
project ownership from the governance documents, and helps move CI settings
between the central configuration and project repositories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return common.InitLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		common.SyncLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	var exitErr *common.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	ui.Error(err.Error())
	os.Exit(1)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&common.Options.ConfigPath, "config", "", "Settings file (default is $XDG_CONFIG_HOME/goal-tools/config.yaml)")
	flags.BoolVarP(&common.Options.Verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&common.Options.CacheDir, "cache-dir", "", "Directory of the review cache")
	flags.StringVar(&common.Options.ReviewURL, "review-url", "", "Base URL of the code review service")

	// Register all commands
	commands := []Command{
		&whohelped.Command{},
		&governance.Command{},
		&jobs.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
