package gerrit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadReview(t *testing.T, id string) *Review {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", id+".json"))
	require.NoError(t, err)
	review, err := NewReview(id, data)
	require.NoError(t, err)
	return review
}

func date(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"fractional seconds discarded", "2018-03-22 16:05:45.000000", date(2018, 3, 22, 16, 5, 45), false},
		{"nanoseconds discarded", "2018-04-24 10:18:51.123456789", date(2018, 4, 24, 10, 18, 51), false},
		{"no fraction", "2018-04-24 10:18:51", date(2018, 4, 24, 10, 18, 51), false},
		{"iso format rejected", "2018-04-24T10:18:51Z", time.Time{}, true},
		{"garbage rejected", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReview_Accessors(t *testing.T) {
	rev := loadReview(t, "55535")

	assert.Equal(t, "55535", rev.ID())
	assert.Equal(t, "https://review.openstack.org/55535/", rev.URL())
	assert.Equal(t, "master", rev.Branch())
	assert.Equal(t, "openstack/blazar-dashboard", rev.Project())
	assert.Equal(t, date(2018, 3, 22, 16, 5, 45), rev.Created())
	assert.False(t, rev.IsMerged())
	assert.True(t, loadReview(t, "561507").IsMerged())
}

func TestReview_Defaults(t *testing.T) {
	rev, err := NewReview("1", json.RawMessage(`{"owner": {"name": "Nobody"}}`))
	require.NoError(t, err)

	assert.Equal(t, UnknownBranch, rev.Branch())
	assert.True(t, rev.Created().IsZero())
	assert.False(t, rev.IsMerged())
	assert.Equal(t, Participant{Role: RoleOwner, Name: "Nobody", Email: DefaultEmail}, rev.Owner())
	assert.Empty(t, rev.Uploaders())
	assert.Empty(t, rev.Reviewers())
	assert.Empty(t, rev.PlusOnes())
}

func TestReview_IsMerged(t *testing.T) {
	tests := []struct {
		doc      string
		expected bool
	}{
		{`{"status": "MERGED"}`, true},
		{`{"status": "merged"}`, false},
		{`{"status": "NEW"}`, false},
		{`{"status": "ABANDONED"}`, false},
		{`{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			rev, err := NewReview("1", json.RawMessage(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rev.IsMerged())
		})
	}
}

func TestNewReview_BadTimestamp(t *testing.T) {
	_, err := NewReview("1", json.RawMessage(`{"created": "22/03/2018"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timestamp")
}

func TestReview_Owner(t *testing.T) {
	owner := loadReview(t, "55535").Owner()

	expected := Participant{
		Role:  RoleOwner,
		Name:  "Doug Hellmann",
		Email: "doug@doughellmann.com",
		Date:  date(2018, 3, 22, 16, 5, 45),
	}
	assert.Equal(t, expected, owner)
}

func TestReview_Uploaders(t *testing.T) {
	uploaders := loadReview(t, "55535").Uploaders()

	expected := []Participant{
		{
			Role:  RoleUploader,
			Name:  "Hiroaki Kobayashi",
			Email: "kobayashi.hiroaki@lab.ntt.co.jp",
			Date:  date(2018, 4, 10, 6, 7, 47),
		},
		{
			Role:  RoleUploader,
			Name:  "Akihiro Motoki",
			Email: "amotoki@gmail.com",
			Date:  date(2018, 4, 22, 2, 28, 56),
		},
	}
	if diff := cmp.Diff(expected, uploaders); diff != "" {
		t.Errorf("Uploaders() mismatch (-want +got):\n%s", diff)
	}
}

func TestReview_UploadersSkipOwnerAndRepeats(t *testing.T) {
	doc := `{
		"owner": {"email": "a"},
		"revisions": {
			"sha3": {"_number": 3, "uploader": {"email": "a"}},
			"sha1": {"_number": 1, "uploader": {"email": "a"}},
			"sha2": {"_number": 2, "uploader": {"email": "b"}}
		}
	}`
	rev, err := NewReview("1", json.RawMessage(doc))
	require.NoError(t, err)

	uploaders := rev.Uploaders()
	require.Len(t, uploaders, 1)
	assert.Equal(t, "b", uploaders[0].Email)
	assert.Equal(t, RoleUploader, uploaders[0].Role)
}

func TestReview_Reviewers(t *testing.T) {
	reviewers := loadReview(t, "55535").Reviewers()

	expected := []Participant{
		{
			Role:  RoleReviewer,
			Name:  "Masahito Muroi",
			Email: "muroi.masahito@lab.ntt.co.jp",
			Date:  date(2018, 4, 24, 10, 18, 51),
		},
		{
			Role:  RoleReviewer,
			Name:  "Hiroaki Kobayashi",
			Email: "kobayashi.hiroaki@lab.ntt.co.jp",
			Date:  date(2018, 4, 24, 1, 32, 26),
		},
		{
			Role:  RoleApprover,
			Name:  "Masahito Muroi",
			Email: "muroi.masahito@lab.ntt.co.jp",
			Date:  date(2018, 4, 26, 6, 32, 1),
		},
	}
	if diff := cmp.Diff(expected, reviewers); diff != "" {
		t.Errorf("Reviewers() mismatch (-want +got):\n%s", diff)
	}
}

func TestReview_PlusOnes(t *testing.T) {
	plusOnes := loadReview(t, "561507").PlusOnes()

	expected := []Participant{
		{
			Role:  RolePlusOne,
			Name:  "melissaml",
			Email: "ma.lei@99cloud.net",
			Date:  date(2018, 5, 6, 12, 7, 2),
		},
		{
			Role:  RolePlusOne,
			Name:  "wu.chunyang",
			Email: "wu.chunyang@99cloud.net",
			Date:  date(2018, 5, 6, 14, 6, 46),
		},
	}
	if diff := cmp.Diff(expected, plusOnes); diff != "" {
		t.Errorf("PlusOnes() mismatch (-want +got):\n%s", diff)
	}
}

func TestReview_VotePartition(t *testing.T) {
	doc := `{"labels": {"Code-Review": {"all": [
		{"value": 2, "name": "two"},
		{"value": 1, "name": "one"},
		{"value": -1, "name": "minus"},
		{"value": -2, "name": "block"},
		{"name": "novote"}
	]}}}`
	rev, err := NewReview("1", json.RawMessage(doc))
	require.NoError(t, err)

	var reviewerNames, plusOneNames []string
	for _, p := range rev.Reviewers() {
		reviewerNames = append(reviewerNames, p.Name)
		assert.Equal(t, UnknownEmail, p.Email)
	}
	for _, p := range rev.PlusOnes() {
		plusOneNames = append(plusOneNames, p.Name)
	}

	assert.Equal(t, []string{"two", "minus"}, reviewerNames)
	assert.Equal(t, []string{"one"}, plusOneNames)
}

func TestReview_UnknownVoter(t *testing.T) {
	doc := `{"labels": {"Workflow": {"all": [{"value": 1}]}}}`
	rev, err := NewReview("1", json.RawMessage(doc))
	require.NoError(t, err)

	expected := []Participant{{Role: RoleApprover, Name: UnknownName, Email: UnknownEmail}}
	assert.Equal(t, expected, rev.Reviewers())
}

func TestReview_Participants(t *testing.T) {
	rev := loadReview(t, "55535")

	var roles []Role
	var emails []string
	for _, p := range rev.Participants() {
		roles = append(roles, p.Role)
		emails = append(emails, p.Email)
	}

	assert.Equal(t, []Role{
		RoleOwner,
		RoleReviewer,
		RoleReviewer,
		RoleApprover,
		RoleUploader,
		RoleUploader,
	}, roles)
	assert.Equal(t, "doug@doughellmann.com", emails[0])
	assert.Equal(t, "amotoki@gmail.com", emails[len(emails)-1])
}
