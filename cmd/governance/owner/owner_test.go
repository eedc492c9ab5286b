package owner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/goaltools/internal/governance"
)

const projectsYAML = `
oslo:
  tags:
    - team:diverse-affiliation
  deliverables:
    oslo.config:
      repos:
        - openstack/oslo.config
      tags:
        - stable:follows-policy
`

func newIndex(t *testing.T) *governance.Index {
	t.Helper()
	idx, err := governance.Parse([]byte(projectsYAML), []byte("{}"), []byte("{}"))
	require.NoError(t, err)
	return idx
}

func TestOwner(t *testing.T) {
	var out bytes.Buffer
	c := &Command{Repos: []string{"openstack/oslo.config"}, Index: newIndex(t), Out: &out}
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, out.String(), "oslo")
	assert.Contains(t, out.String(), "oslo.config")
	assert.Contains(t, out.String(), "stable:follows-policy, team:diverse-affiliation")
}

func TestOwner_Unknown(t *testing.T) {
	c := &Command{Repos: []string{"openstack/missing"}, Index: newIndex(t), Out: &bytes.Buffer{}}
	assert.ErrorContains(t, c.Run(context.Background()), "no owner found")
}
