package common

import (
	"fmt"
	"io"
	"slices"

	"github.com/bjulian5/goaltools/internal/report"
	"github.com/bjulian5/goaltools/internal/ui"
)

// Output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
)

// Formats lists the supported output formats
var Formats = []string{FormatTable, FormatCSV}

// ValidateFormat checks an output format flag
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unknown output format %q, expected one of %v", format, Formats)
	}
	return nil
}

// WriteRows writes rows under headers as a table or as CSV. In a table the
// Role column is rendered in the role colors.
func WriteRows(w io.Writer, format string, headers []string, rows [][]string) error {
	switch format {
	case FormatCSV:
		return report.WriteRecords(w, headers, rows)
	case FormatTable:
		_, err := fmt.Fprintln(w, ui.RenderTable(headers, colorRoles(headers, rows)))
		return err
	default:
		return ValidateFormat(format)
	}
}

// colorRoles returns a copy of rows with the Role column styled
func colorRoles(headers []string, rows [][]string) [][]string {
	col := slices.Index(headers, report.ColRole)
	if col < 0 {
		return rows
	}
	styled := make([][]string, len(rows))
	for i, row := range rows {
		styled[i] = slices.Clone(row)
		if col < len(row) {
			styled[i][col] = ui.RenderRole(row[col])
		}
	}
	return styled
}

// ExitError ends the process with Code without printing a message
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}
