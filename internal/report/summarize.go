package report

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Count is the number of rows sharing the same values in the summarized
// columns
type Count struct {
	Values []string
	Count  int
}

// UnknownColumnError is returned when summarizing by a column reports do
// not have
type UnknownColumnError struct {
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q, expected one of: %s", e.Column, strings.Join(Columns, ", "))
}

// Summarize counts the rows by the values of the by columns, Organization
// when by is empty. If roles is not empty only rows with one of those
// roles are counted. Counts are sorted largest first, ties by value.
func Summarize(rows iter.Seq2[Row, error], by []string, roles []string) ([]Count, error) {
	if len(by) == 0 {
		by = []string{ColOrganization}
	}
	for _, col := range by {
		if !slices.Contains(Columns, col) {
			return nil, &UnknownColumnError{Column: col}
		}
	}

	counts := make(map[string]*Count)
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		if len(roles) > 0 && !slices.Contains(roles, row[ColRole]) {
			continue
		}
		values := row.Values(by)
		key := strings.Join(values, "\x00")
		if c, ok := counts[key]; ok {
			c.Count++
			continue
		}
		counts[key] = &Count{Values: values, Count: 1}
	}

	summary := make([]Count, 0, len(counts))
	for _, c := range counts {
		summary = append(summary, *c)
	}
	slices.SortFunc(summary, func(a, b Count) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return slices.Compare(a.Values, b.Values)
	})
	return summary, nil
}

// SummaryColumns returns the header for a summary by the given columns
func SummaryColumns(by []string) []string {
	if len(by) == 0 {
		by = []string{ColOrganization}
	}
	return append(slices.Clone(by), "Count")
}
