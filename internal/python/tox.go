// Package python updates the Python packaging files of a repository for a
// new set of supported Python 3 versions.
package python

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// Tox environments
var (
	droppedEnvs = []string{"py34", "py35"}
	TrainEnvs   = []string{"py36", "py37"}
)

// ToxFile is the tox configuration file name
const ToxFile = "tox.ini"

// ListToxEnvs runs "tox --listenvs" in dir and returns the default
// environments
func ListToxEnvs(ctx context.Context, dir string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "tox", "--listenvs")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list tox environments in %s: %w", dir, err)
	}
	return parseToxEnvs(output), nil
}

// parseToxEnvs splits "tox --listenvs" output into environment names.
// Empty output has no environments.
func parseToxEnvs(output []byte) []string {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// UpdateToxEnvs returns envs with the Train environments in place of older
// Python 3 environments. The Train environments go right after py27, or
// first if there is no py27. Lists without any py3 environment are
// returned unchanged.
func UpdateToxEnvs(envs []string) []string {
	updated := slices.Clone(envs)
	if !slices.ContainsFunc(updated, func(env string) bool { return strings.Contains(env, "py3") }) {
		return updated
	}

	updated = slices.DeleteFunc(updated, func(env string) bool {
		return slices.Contains(droppedEnvs, env) || slices.Contains(TrainEnvs, env)
	})
	index := 0
	if i := slices.Index(updated, "py27"); i >= 0 {
		index = i + 1
	}
	return slices.Insert(updated, index, TrainEnvs...)
}

// ReplaceEnvList rewrites the "envlist = ..." setting of a tox
// configuration from oldEnvs to newEnvs. The second result is false when
// the setting was not found.
func ReplaceEnvList(contents []byte, oldEnvs, newEnvs []string) ([]byte, bool) {
	old := []byte("envlist = " + strings.Join(oldEnvs, ","))
	if !bytes.Contains(contents, old) {
		return contents, false
	}
	return bytes.ReplaceAll(contents, old, []byte("envlist = "+strings.Join(newEnvs, ","))), true
}

// WriteToxEnvs replaces the environment list in dir's tox.ini. It reports
// whether the file changed; a missing tox.ini is not an error.
func WriteToxEnvs(dir string, oldEnvs, newEnvs []string) (bool, error) {
	path := filepath.Join(dir, ToxFile)
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, ok := ReplaceEnvList(contents, oldEnvs, newEnvs)
	if !ok || bytes.Equal(updated, contents) {
		return false, nil
	}
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
