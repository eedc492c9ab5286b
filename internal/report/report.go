// Package report builds and summarizes contribution reports: one row per
// person taking part in a review.
package report

import (
	"iter"
	"strings"

	"github.com/bjulian5/goaltools/internal/gerrit"
)

// Report columns
const (
	ColReviewID     = "Review ID"
	ColReviewURL    = "Review URL"
	ColProject      = "Project"
	ColTeam         = "Team"
	ColRole         = "Role"
	ColName         = "Name"
	ColEmail        = "Email"
	ColOrganization = "Organization"
	ColDate         = "Date"
)

// Columns lists the report columns in output order
var Columns = []string{
	ColReviewID,
	ColReviewURL,
	ColProject,
	ColTeam,
	ColRole,
	ColName,
	ColEmail,
	ColOrganization,
	ColDate,
}

// Row maps column names to values
type Row map[string]string

// Values returns the row's values in the order of columns
func (r Row) Values(columns []string) []string {
	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = r[col]
	}
	return values
}

// TeamLookup finds the team owning a repository
type TeamLookup interface {
	RepoOwner(repo string) string
}

// Unique yields the first occurrence of each value of seq
func Unique[T comparable](seq iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		seen := make(map[T]struct{})
		for v := range seq {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			if !yield(v) {
				return
			}
		}
	}
}

// Organization returns the domain of an email address
func Organization(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return strings.ToLower(domain)
}

// ContributorRows returns a row for each participant of review. Team is
// empty when teams is nil or does not know the project.
func ContributorRows(review *gerrit.Review, teams TeamLookup) []Row {
	team := ""
	if teams != nil {
		team = teams.RepoOwner(review.Project())
	}

	participants := review.Participants()
	rows := make([]Row, 0, len(participants))
	for _, p := range participants {
		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format(gerrit.TimestampLayout)
		}
		rows = append(rows, Row{
			ColReviewID:     review.ID(),
			ColReviewURL:    review.URL(),
			ColProject:      review.Project(),
			ColTeam:         team,
			ColRole:         string(p.Role),
			ColName:         p.Name,
			ColEmail:        p.Email,
			ColOrganization: Organization(p.Email),
			ColDate:         date,
		})
	}
	return rows
}
