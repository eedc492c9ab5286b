package gerrit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the review service timestamp format without the
// fractional seconds
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a review service time. The zero value means the field was
// absent.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses "YYYY-MM-DD HH:MM:SS[.fraction]" in UTC, discarding
// the fraction.
func ParseTimestamp(s string) (time.Time, error) {
	s, _, _ = strings.Cut(s, ".")
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// accountJSON is an account as returned with DETAILED_ACCOUNTS
type accountJSON struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

type revisionJSON struct {
	Number   int          `json:"_number"`
	Created  Timestamp    `json:"created"`
	Uploader *accountJSON `json:"uploader"`
}

// approvalJSON is one vote inside a label's "all" list
type approvalJSON struct {
	Value *int      `json:"value"`
	Name  *string   `json:"name"`
	Email *string   `json:"email"`
	Date  Timestamp `json:"date"`
}

type labelJSON struct {
	All []approvalJSON `json:"all"`
}

// changeJSON is the subset of a change document the review model reads
type changeJSON struct {
	Number      int                     `json:"_number"`
	Status      string                  `json:"status"`
	Project     string                  `json:"project"`
	Branch      *string                 `json:"branch"`
	Created     Timestamp               `json:"created"`
	Owner       *accountJSON            `json:"owner"`
	Revisions   map[string]revisionJSON `json:"revisions"`
	Labels      map[string]labelJSON    `json:"labels"`
	MoreChanges bool                    `json:"_more_changes"`
}
