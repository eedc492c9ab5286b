package gerrit

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

const (
	// DefaultEmail replaces a missing owner or uploader email
	DefaultEmail = "no-reply@openstack.org"
	// UnknownName replaces a missing voter name
	UnknownName = "Unknown Person"
	// UnknownEmail replaces a missing voter email
	UnknownEmail = "unknown@example.com"
	// UnknownBranch is reported when a change has no branch
	UnknownBranch = "*unknown"

	statusMerged    = "MERGED"
	labelCodeReview = "Code-Review"
	labelWorkflow   = "Workflow"
)

// Role describes how a person took part in a review
type Role string

const (
	RoleOwner    Role = "owner"
	RoleUploader Role = "uploader"
	RoleReviewer Role = "reviewer"
	RoleApprover Role = "approver"
	RolePlusOne  Role = "plus_one"
)

// Participant is a person associated with a review. Date is zero when the
// source document did not record one.
type Participant struct {
	Role  Role
	Name  string
	Email string
	Date  time.Time
}

// Review is a read-only view of one change document
type Review struct {
	id      string
	baseURL string
	raw     json.RawMessage
	change  changeJSON
}

// NewReview decodes raw into a Review. Every timestamp in the document is
// parsed here, so a malformed one fails construction.
func NewReview(id string, raw json.RawMessage) (*Review, error) {
	var change changeJSON
	if err := json.Unmarshal(raw, &change); err != nil {
		return nil, fmt.Errorf("failed to parse review %s: %w", id, err)
	}
	return &Review{
		id:      id,
		baseURL: DefaultURL,
		raw:     raw,
		change:  change,
	}, nil
}

// ID returns the review id
func (r *Review) ID() string {
	return r.id
}

// Raw returns the document the review was built from
func (r *Review) Raw() json.RawMessage {
	return r.raw
}

// URL returns the web location of the review
func (r *Review) URL() string {
	return r.baseURL + r.id + "/"
}

// Created returns the creation time, or the zero time if absent
func (r *Review) Created() time.Time {
	return r.change.Created.Time
}

// IsMerged reports whether the change status is exactly MERGED
func (r *Review) IsMerged() bool {
	return r.change.Status == statusMerged
}

// Project returns the repository the change belongs to
func (r *Review) Project() string {
	return r.change.Project
}

// Branch returns the target branch, or UnknownBranch
func (r *Review) Branch() string {
	if r.change.Branch == nil {
		return UnknownBranch
	}
	return *r.change.Branch
}

// Owner returns the change owner, dated at the change creation time
func (r *Review) Owner() Participant {
	p := Participant{
		Role:  RoleOwner,
		Email: DefaultEmail,
		Date:  r.Created(),
	}
	if owner := r.change.Owner; owner != nil {
		p.Name = owner.Name
		if owner.Email != nil {
			p.Email = *owner.Email
		}
	}
	return p
}

// Uploaders returns one participant per distinct uploader email, in patch
// set order. The owner is not repeated as an uploader, so an uploader here
// is someone who took over a patch to fix it.
func (r *Review) Uploaders() []Participant {
	known := map[string]bool{
		r.Owner().Email: true,
	}

	// Revisions are keyed by SHA; order them by patch set number.
	shas := make([]string, 0, len(r.change.Revisions))
	for sha := range r.change.Revisions {
		shas = append(shas, sha)
	}
	sort.Slice(shas, func(i, j int) bool {
		a, b := r.change.Revisions[shas[i]], r.change.Revisions[shas[j]]
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return shas[i] < shas[j]
	})

	var uploaders []Participant
	for _, sha := range shas {
		revision := r.change.Revisions[sha]

		var name string
		email := DefaultEmail
		if uploader := revision.Uploader; uploader != nil {
			name = uploader.Name
			if uploader.Email != nil {
				email = *uploader.Email
			}
		}
		if known[email] {
			continue
		}
		known[email] = true

		uploaders = append(uploaders, Participant{
			Role:  RoleUploader,
			Name:  name,
			Email: email,
			Date:  revision.Created.Time,
		})
	}
	return uploaders
}

// Reviewers returns Code-Review voters with +2 or -1 as reviewers, then
// Workflow +1 voters as approvers. Code-Review +1 votes are reported by
// PlusOnes instead.
func (r *Review) Reviewers() []Participant {
	var reviewers []Participant
	for _, vote := range r.votes(labelCodeReview) {
		if vote.Value == nil || (*vote.Value != 2 && *vote.Value != -1) {
			continue
		}
		reviewers = append(reviewers, voter(RoleReviewer, vote))
	}
	for _, vote := range r.votes(labelWorkflow) {
		if vote.Value == nil || *vote.Value != 1 {
			continue
		}
		reviewers = append(reviewers, voter(RoleApprover, vote))
	}
	return reviewers
}

// PlusOnes returns the Code-Review +1 voters
func (r *Review) PlusOnes() []Participant {
	var plusOnes []Participant
	for _, vote := range r.votes(labelCodeReview) {
		if vote.Value == nil || *vote.Value != 1 {
			continue
		}
		plusOnes = append(plusOnes, voter(RolePlusOne, vote))
	}
	return plusOnes
}

// Participants returns the owner, the reviewers and approvers, then the
// uploaders.
func (r *Review) Participants() []Participant {
	participants := []Participant{r.Owner()}
	participants = append(participants, r.Reviewers()...)
	participants = append(participants, r.Uploaders()...)
	return participants
}

func (r *Review) votes(label string) []approvalJSON {
	return r.change.Labels[label].All
}

func voter(role Role, vote approvalJSON) Participant {
	p := Participant{
		Role:  role,
		Name:  UnknownName,
		Email: UnknownEmail,
		Date:  vote.Date.Time,
	}
	if vote.Name != nil {
		p.Name = *vote.Name
	}
	if vote.Email != nil {
		p.Email = *vote.Email
	}
	return p
}
