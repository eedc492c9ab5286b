package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitReviewFile is the file naming a repository's review service project
const GitReviewFile = ".gitreview"

// Client provides git operations for a repository
type Client struct {
	gitRoot string
}

// NewClientAt creates a new git client for the repository containing dir
func NewClientAt(dir string) (*Client, error) {
	gitRoot, err := getGitRoot(dir)
	if err != nil {
		return nil, err
	}
	return &Client{gitRoot: gitRoot}, nil
}

// GitRoot returns the root directory of the git repository
func (c *Client) GitRoot() string {
	return c.gitRoot
}

// command builds a git command running in the repository root
func (c *Client) command(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = c.gitRoot
	return cmd
}

// ConfigFileValue reads key from a git-config formatted file. Relative
// paths are resolved against the repository root.
func (c *Client) ConfigFileValue(file, key string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(c.gitRoot, file)
	}
	output, err := c.command("config", "-f", file, key).Output()
	if err != nil {
		return "", fmt.Errorf("failed to read %s from %s: %w", key, file, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ReviewProject returns the review service project of the repository, as
// named in its .gitreview file, without any ".git" suffix
func (c *Client) ReviewProject() (string, error) {
	project, err := c.ConfigFileValue(GitReviewFile, "gerrit.project")
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(project, ".git"), nil
}

// HasUncommittedChanges checks if there are any uncommitted changes in the working directory
func (c *Client) HasUncommittedChanges() (bool, error) {
	output, err := c.command("status", "--porcelain").Output()
	if err != nil {
		return false, fmt.Errorf("failed to check git status: %w", err)
	}
	return len(strings.TrimSpace(string(output))) > 0, nil
}

// getGitRoot is a private helper to get the git root directory
func getGitRoot(dir string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}
