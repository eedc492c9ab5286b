package zuul

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"
)

func loadTestSettings(t *testing.T) *Settings {
	t.Helper()
	s, err := LoadSettings(filepath.Join("testdata", "projects.yaml"))
	require.NoError(t, err)
	return s
}

func loadTestDefinitions(t *testing.T) *Definitions {
	t.Helper()
	defs, err := LoadDefinitions(
		filepath.Join("testdata", "project-templates.yaml"),
		filepath.Join("testdata", "jobs.yaml"),
	)
	require.NoError(t, err)
	return defs
}

func loadTestProject(t *testing.T, name string) *Project {
	t.Helper()
	p, err := loadTestSettings(t).Project(name)
	require.NoError(t, err)
	return p
}

// value decodes a node into plain maps and slices for comparison
func value(t *testing.T, n *yaml.Node) any {
	t.Helper()
	var v any
	require.NoError(t, n.Decode(&v))
	return v
}

func expected(t *testing.T, src string) any {
	t.Helper()
	var v any
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	return v
}

func encodeProject(t *testing.T, p *Project) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, EncodeProjects(&buf, p))
	return buf.String()
}

func TestFilterJobsOnBranch_Stable(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	filtered, err := FilterJobsOnBranch(p, "stable/queens", zaptest.NewLogger(t))
	require.NoError(t, err)

	want := expected(t, `
name: openstack/nova
templates:
  - system-required
  - openstack-python-jobs
  - docs-on-master
  - inline-master
  - release-notes-jobs
check:
  jobs:
    - nova-tox-functional
    - nova-multi
    - nova-stable:
        voting: false
post:
  queue: nova
`)
	if diff := cmp.Diff(want, value(t, filtered.Node())); diff != "" {
		t.Errorf("filtered project mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterJobsOnBranch_MasterOnlyJobsDropped(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	filtered, err := FilterJobsOnBranch(p, Master, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"check"}, filtered.Queues())
	jobs := filtered.Jobs("check")
	require.Len(t, jobs, 1)
	assert.Equal(t, "nova-tox-functional", jobs[0].Name)
	assert.Nil(t, mapGet(filtered.Node(), "gate"))
	assert.Equal(t, expected(t, "queue: nova"), value(t, mapGet(filtered.Node(), "post")))
}

func TestFilterJobsOnBranch_DoesNotModifyInput(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")
	before := encodeProject(t, p)

	_, err := FilterJobsOnBranch(p, "stable/rocky", nil)
	require.NoError(t, err)
	_, err = RetainJobs(p, nil)
	require.NoError(t, err)
	_, err = ExtractTemplates(p, loadTestDefinitions(t), nil)
	require.NoError(t, err)

	assert.Equal(t, before, encodeProject(t, p))
}

func TestTemplatesOnlyOnMaster(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	found, err := TemplatesOnlyOnMaster(p, loadTestDefinitions(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"docs-on-master", "inline-master"}, found)
}

func TestExtractTemplates(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	extracted, err := ExtractTemplates(p, loadTestDefinitions(t), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"openstack-python-jobs", "release-notes-jobs"}, extracted.Templates())
}

func TestExtractTemplates_RemovesEmptyList(t *testing.T) {
	p, err := NewProject(parseNode(t, "name: x\ntemplates:\n  - system-required\n  - publish-to-pypi\n"))
	require.NoError(t, err)

	extracted, err := ExtractTemplates(p, &Definitions{}, nil)
	require.NoError(t, err)
	assert.False(t, mapHas(extracted.Node(), templatesKey))
}

func TestExtract_Idempotent(t *testing.T) {
	defs := loadTestDefinitions(t)
	extract := func(p *Project) *Project {
		p, err := ExtractTemplates(p, defs, nil)
		require.NoError(t, err)
		p, err = FilterJobsOnBranch(p, "stable/rocky", nil)
		require.NoError(t, err)
		return p.Without("name")
	}

	once := extract(loadTestProject(t, "openstack/nova"))
	twice := extract(once)
	if diff := cmp.Diff(value(t, once.Node()), value(t, twice.Node())); diff != "" {
		t.Errorf("second extract changed the project (-once +twice):\n%s", diff)
	}
	assert.Equal(t, encodeProject(t, once), encodeProject(t, twice))
}

func TestRetainTemplates(t *testing.T) {
	defs := loadTestDefinitions(t)

	retained, err := RetainTemplates(loadTestProject(t, "openstack/nova"), defs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"system-required", "docs-on-master", "inline-master"}, retained.Templates())

	retained, err = RetainTemplates(loadTestProject(t, "openstack/oslo.config"), defs, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"system-required", "docs-on-master"}, retained.Templates())
}

func TestRetainTemplates_NoTemplates(t *testing.T) {
	p, err := NewProject(parseNode(t, "name: x"))
	require.NoError(t, err)

	retained, err := RetainTemplates(p, &Definitions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{SystemRequired}, retained.Templates())
}

func TestRetainJobs(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	retained, err := RetainJobs(p, zaptest.NewLogger(t))
	require.NoError(t, err)

	want := expected(t, `
check:
  jobs:
    - nova-master-only:
        branches: master
gate:
  jobs:
    - nova-master-only:
        branches: master
post:
  jobs:
    - nova-publish:
        branches: master
  queue: nova
`)
	got := value(t, retained.Without("name").Without(templatesKey).Node())
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("retained jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestFilters_LookaheadBranchFilter(t *testing.T) {
	p, err := NewProject(parseNode(t, `
name: openstack/oslo.config
check:
  jobs:
    - oslo-not-ocata:
        branches: ^(?!stable/ocata).*$
    - oslo-master-only:
        branches: ^(?!stable/).*$
`))
	require.NoError(t, err)

	filtered, err := FilterJobsOnBranch(p, "stable/rocky", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, expected(t, "jobs:\n  - oslo-not-ocata\n"), value(t, mapGet(filtered.Node(), "check")))

	filtered, err = FilterJobsOnBranch(p, "stable/ocata", nil)
	require.NoError(t, err)
	assert.Empty(t, filtered.Queues())

	retained, err := RetainJobs(p, zaptest.NewLogger(t))
	require.NoError(t, err)
	want := expected(t, `
jobs:
  - oslo-master-only:
      branches: ^(?!stable/).*$
`)
	if diff := cmp.Diff(want, value(t, mapGet(retained.Node(), "check"))); diff != "" {
		t.Errorf("retained jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestFilters_KeepComments(t *testing.T) {
	p := loadTestProject(t, "openstack/nova")

	p, err := ExtractTemplates(p, loadTestDefinitions(t), nil)
	require.NoError(t, err)
	p, err = FilterJobsOnBranch(p, "stable/queens", nil)
	require.NoError(t, err)

	assert.Contains(t, encodeProject(t, p), "# templates used by nova")
}
