package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjulian5/goaltools/internal/git"
)

// GitReview is a .gitreview file for openstack/oslo.config
const GitReview = "[gerrit]\nhost=review.openstack.org\nport=29418\nproject=openstack/oslo.config.git\n"

// NewTestRepo creates a git repository in a temporary directory holding
// files, committed as the initial commit
func NewTestRepo(t *testing.T, files map[string]string) *git.Client {
	t.Helper()
	tempDir := t.TempDir()

	runGit(t, tempDir, "init", "--initial-branch=master")
	// Set user name and email for reproducible commits
	runGit(t, tempDir, "config", "user.email", "test@example.com")
	runGit(t, tempDir, "config", "user.name", "Test User")

	WriteFiles(t, tempDir, files)
	CommitAll(t, tempDir, "Initial commit")

	gitClient, err := git.NewClientAt(tempDir)
	require.NoError(t, err)
	return gitClient
}

// WriteFiles writes files, keyed by path relative to dir
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CommitAll stages and commits everything in dir
func CommitAll(t *testing.T, dir string, message string) {
	t.Helper()
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "--allow-empty", "-m", message)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_DATE=2024-01-01T00:00:00Z",
		"GIT_COMMITTER_DATE=2024-01-01T00:00:00Z",
	)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v failed: %s", args, string(output))
}
