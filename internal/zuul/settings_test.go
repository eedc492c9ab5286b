package zuul

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Project(t *testing.T) {
	s := loadTestSettings(t)

	p, err := s.Project("openstack/oslo.config")
	require.NoError(t, err)
	assert.Equal(t, "openstack/oslo.config", p.Name())
	assert.Equal(t, []string{"docs-on-master", "openstack-python-jobs"}, p.Templates())
	assert.Equal(t, []string{"check", "gate", "post"}, loadTestProject(t, "openstack/nova").Queues())
}

func TestSettings_ProjectNotFound(t *testing.T) {
	s := loadTestSettings(t)

	_, err := s.Project("openstack/missing")
	var notFound *ProjectNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "openstack/missing", notFound.Name)
	assert.Equal(t, filepath.Join("testdata", "projects.yaml"), notFound.File)
	assert.EqualError(t, err, "could not find openstack/missing in testdata/projects.yaml")
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings(nil)
	require.NoError(t, err)
	assert.Empty(t, s.Bodies(KindProject))

	_, err = ParseSettings([]byte("project: {}"))
	assert.Error(t, err)

	_, err = ParseSettings([]byte("- [unterminated"))
	assert.Error(t, err)
}

func TestLoadDefinitions(t *testing.T) {
	defs := loadTestDefinitions(t)
	assert.Len(t, defs.Templates, 3)
	assert.Contains(t, defs.Templates, "inline-master")
	assert.Len(t, defs.Jobs, 2)
	assert.Contains(t, defs.Jobs, "build-docs-master")
}

func TestSettings_SaveKeepsComments(t *testing.T) {
	s := loadTestSettings(t)
	p, err := s.Project("openstack/nova")
	require.NoError(t, err)

	migrated, changed := AddTemplateAfter(p, "openstack-python-jobs", TrainJobs)
	require.True(t, changed)
	updated, err := s.WithFirstProject(migrated)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "projects.yaml")
	require.NoError(t, updated.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Project settings for the central CI configuration.")
	assert.Contains(t, string(data), "# templates used by nova")

	reloaded, err := LoadSettings(path)
	require.NoError(t, err)
	p, err = reloaded.Project("openstack/nova")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"system-required",
		"openstack-python-jobs",
		TrainJobs,
		"docs-on-master",
		"inline-master",
		"release-notes-jobs",
	}, p.Templates())

	// the original settings are untouched
	p, err = s.Project("openstack/nova")
	require.NoError(t, err)
	assert.NotContains(t, p.Templates(), TrainJobs)
}

func TestEncodeProjects(t *testing.T) {
	p := loadTestProject(t, "openstack/oslo.config").Without("name")

	var buf bytes.Buffer
	require.NoError(t, EncodeProjects(&buf, p))

	s, err := ParseSettings(buf.Bytes())
	require.NoError(t, err)
	first, ok, err := s.FirstProject()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", first.Name())
	assert.Equal(t, []string{"docs-on-master", "openstack-python-jobs"}, first.Templates())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestFindInTreeSettings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".zuul.d", "jobs.yaml"), "- job:\n    name: local-job\n")
	writeFile(t, filepath.Join(dir, "zuul.d", "project.yaml"), "- project:\n    templates:\n      - openstack-python36-jobs\n")

	s, err := FindInTreeSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "zuul.d", "project.yaml"), s.Path())

	p, ok, err := s.FirstProject()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"openstack-python36-jobs"}, p.Templates())
}

func TestFindInTreeSettings_PrefersDotZuul(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".zuul.yaml"), "- project:\n    check:\n      jobs:\n        - a\n")
	writeFile(t, filepath.Join(dir, "zuul.d", "project.yaml"), "- project:\n    templates: [b]\n")

	s, err := FindInTreeSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".zuul.yaml"), s.Path())
}

func TestFindInTreeSettings_NotFound(t *testing.T) {
	_, err := FindInTreeSettings(t.TempDir())
	assert.ErrorIs(t, err, ErrNoInTreeSettings)
}
