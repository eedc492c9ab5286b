package report

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/goaltools/internal/gerrit"
)

const reviewJSON = `{
  "_number": 561507,
  "status": "MERGED",
  "project": "openstack/oslo.config",
  "branch": "master",
  "created": "2018-05-03 14:25:03.000000000",
  "owner": {"name": "Doug", "email": "doug@Example.COM"},
  "revisions": {
    "aaa": {"_number": 1, "created": "2018-05-03 14:25:03.000000000", "uploader": {"name": "Doug", "email": "doug@Example.COM"}},
    "bbb": {"_number": 2, "created": "2018-05-04 09:00:00.000000000", "uploader": {"name": "Ben", "email": "ben@redhat.com"}}
  },
  "labels": {
    "Code-Review": {"all": [
      {"value": 2, "name": "Ben", "email": "ben@redhat.com", "date": "2018-05-04 10:00:00.000000000"},
      {"value": 1, "name": "Ken", "email": "ken@nec.com", "date": "2018-05-04 11:00:00.000000000"}
    ]},
    "Workflow": {"all": [
      {"value": 1, "name": "Ben", "email": "ben@redhat.com", "date": "2018-05-04 10:00:01.000000000"}
    ]}
  }
}`

type teamMap map[string]string

func (m teamMap) RepoOwner(repo string) string {
	return m[repo]
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(Unique(slices.Values([]string{"a", "b", "c"}))))
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(Unique(slices.Values([]string{"a", "b", "c", "a", "b", "c"}))))

	var first []int
	for v := range Unique(slices.Values([]int{1, 1, 2, 3})) {
		first = append(first, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, first)
}

func TestOrganization(t *testing.T) {
	assert.Equal(t, "redhat.com", Organization("ben@redhat.com"))
	assert.Equal(t, "example.com", Organization("doug@Example.COM"))
	assert.Equal(t, "", Organization("nobody"))
}

func TestContributorRows(t *testing.T) {
	review, err := gerrit.NewReview("561507", []byte(reviewJSON))
	require.NoError(t, err)

	rows := ContributorRows(review, teamMap{"openstack/oslo.config": "Oslo"})
	require.Len(t, rows, 4)

	assert.Equal(t, Row{
		ColReviewID:     "561507",
		ColReviewURL:    "https://review.openstack.org/561507/",
		ColProject:      "openstack/oslo.config",
		ColTeam:         "Oslo",
		ColRole:         "owner",
		ColName:         "Doug",
		ColEmail:        "doug@Example.COM",
		ColOrganization: "example.com",
		ColDate:         "2018-05-03 14:25:03",
	}, rows[0])

	var roles []string
	for _, row := range rows {
		roles = append(roles, row[ColRole])
		assert.ElementsMatch(t, Columns, slices.Collect(maps.Keys(row)))
	}
	assert.Equal(t, []string{"owner", "reviewer", "approver", "uploader"}, roles)
	assert.Equal(t, "redhat.com", rows[3][ColOrganization])
}

func TestContributorRows_NoTeams(t *testing.T) {
	review, err := gerrit.NewReview("1", []byte(`{"project": "openstack/unknown"}`))
	require.NoError(t, err)

	rows := ContributorRows(review, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0][ColTeam])
	assert.Equal(t, "", rows[0][ColDate])
	assert.Equal(t, gerrit.DefaultEmail, rows[0][ColEmail])
	assert.Equal(t, "openstack.org", rows[0][ColOrganization])
}
