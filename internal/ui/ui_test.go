package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/goaltools/internal/gerrit"
	"github.com/bjulian5/goaltools/internal/governance"
)

var osloTeam = governance.Team{
	Deliverables: map[string]governance.Deliverable{
		"oslo.log":    {Repos: []string{"openstack/oslo.log"}, Tags: []string{"stable:follows-policy"}},
		"oslo.config": {Repos: []string{"openstack/oslo.config"}},
	},
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd...", Truncate("abcdefghijk", 7))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestRenderTeamTree(t *testing.T) {
	out := RenderTeamTree("Oslo", osloTeam)
	assert.Contains(t, out, "Oslo")
	assert.Contains(t, out, "openstack/oslo.config")
	assert.Contains(t, out, "stable:follows-policy")
	assert.Less(t, strings.Index(out, "oslo.config"), strings.Index(out, "oslo.log"))

	assert.Contains(t, RenderTeamTree("Empty", governance.Team{}), "No deliverables")
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"Organization", "Count"}, [][]string{{"redhat.com", "3"}})
	assert.Contains(t, out, "Organization")
	assert.Contains(t, out, "redhat.com")
}

func TestRenderSimpleTable(t *testing.T) {
	out := RenderSimpleTable([]string{"Team", "Repositories"}, [][]string{{"oslo", "2"}})
	assert.Contains(t, out, "Team")
	assert.Contains(t, out, "oslo")
	assert.NotContains(t, out, "│")
}

func TestGetRoleColor(t *testing.T) {
	tests := []struct {
		role     gerrit.Role
		expected string
	}{
		{gerrit.RoleOwner, string(ColorOwner)},
		{gerrit.RoleUploader, string(ColorUploader)},
		{gerrit.RoleReviewer, string(ColorReviewer)},
		{gerrit.RoleApprover, string(ColorApprover)},
		{gerrit.RolePlusOne, string(ColorPlusOne)},
		{"observer", string(ColorText)},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.expected, string(GetRoleColor(string(tt.role))))
		})
	}
	assert.Contains(t, RenderRole("owner"), "owner")
}

func TestFormatRepoInfo(t *testing.T) {
	out := FormatRepoInfo("openstack/oslo.log", governance.RepoInfo{Team: "Oslo", Deliverable: "oslo.log"}, nil)
	assert.Contains(t, out, "Oslo")
	assert.Contains(t, out, "none")
}

func TestFormatTeamPreview(t *testing.T) {
	out := FormatTeamPreview("Oslo", osloTeam)
	assert.Contains(t, out, "openstack/oslo.log")
	assert.Contains(t, out, "2")
}
