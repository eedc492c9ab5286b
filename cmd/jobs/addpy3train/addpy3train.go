package addpy3train

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bjulian5/goaltools/internal/common"
	"github.com/bjulian5/goaltools/internal/git"
	"github.com/bjulian5/goaltools/internal/python"
	"github.com/bjulian5/goaltools/internal/ui"
	"github.com/bjulian5/goaltools/internal/zuul"
)

// NoChangesExitCode is the exit status when the repository needs no update
const NoChangesExitCode = 2

// Command migrates a repository to the Python 3 Train jobs
type Command struct {
	// Arguments
	RepoDir string

	// Clients (can be mocked in tests)
	ListToxEnvs func(ctx context.Context, dir string) ([]string, error)
	Logger      *zap.Logger
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add-py3-train <repo-dir>",
		Short: "Switch a repository to the Python 3 Train jobs",
		Long: `Replace the per-version Python 3 job templates in a repository's in-tree
CI settings with the Train templates, then update the tox environment list
and the setup.cfg classifiers to match.

Exits with status 2 when the repository needs no update.

Example:
  goal-tools jobs add-py3-train ../oslo.config`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			c.ListToxEnvs = python.ListToxEnvs
			c.Logger = common.Logger()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.RepoDir = args[0]
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	gitClient, err := git.NewClientAt(c.RepoDir)
	if err != nil {
		return err
	}
	repo, err := gitClient.ReviewProject()
	if err != nil {
		return fmt.Errorf("failed to determine repository name: %w", err)
	}
	ui.Infof("Working on %s", repo)

	if dirty, err := gitClient.HasUncommittedChanges(); err != nil {
		return err
	} else if dirty {
		ui.Warning("Repository has uncommitted changes")
	}

	settings, err := zuul.FindInTreeSettings(c.RepoDir)
	if errors.Is(err, zuul.ErrNoInTreeSettings) {
		return fmt.Errorf("could not find project settings in %s", c.RepoDir)
	}
	if err != nil {
		return err
	}
	project, _, err := settings.FirstProject()
	if err != nil {
		return err
	}

	migrated, changed := zuul.MigrateToTrain(project)
	if !changed && !zuul.HasTrainTemplate(migrated) {
		ui.Infof("No updates needed for %s", repo)
		return &common.ExitError{Code: NoChangesExitCode}
	}
	if changed {
		updated, err := settings.WithFirstProject(migrated)
		if err != nil {
			return err
		}
		if err := updated.Save(settings.Path()); err != nil {
			return err
		}
		ui.Successf("Updated templates in %s", settings.Path())
	}

	if err := c.updateToxEnvs(ctx); err != nil {
		return err
	}

	setupChanged, err := python.UpdateSetupCfg(c.RepoDir)
	if err != nil {
		return err
	}
	if setupChanged {
		ui.Successf("Updated classifiers in %s", python.SetupFile)
	}
	return nil
}

func (c *Command) updateToxEnvs(ctx context.Context) error {
	envs, err := c.ListToxEnvs(ctx, c.RepoDir)
	if err != nil {
		c.Logger.Debug("tox environment listing failed", zap.Error(err))
		ui.Warning("Could not list tox environments, leaving tox.ini unchanged")
		return nil
	}

	updated := python.UpdateToxEnvs(envs)
	if slices.Equal(updated, envs) {
		return nil
	}
	written, err := python.WriteToxEnvs(c.RepoDir, envs, updated)
	if err != nil {
		return err
	}
	if written {
		ui.Successf("Updated environment list in %s", python.ToxFile)
	}
	return nil
}
