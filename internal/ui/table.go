package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// NewReportTable creates a bordered table with alternating row styles.
// This is a thin wrapper around lipgloss/table with opinionated defaults.
func NewReportTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(TableBorderStyle).
		BorderRow(false).
		BorderColumn(true).
		Headers(headers...).
		StyleFunc(defaultTableStyleFunc)
}

// NewSimpleTable creates a table without borders
func NewSimpleTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.Border{}).
		Headers(headers...).
		StyleFunc(simpleTableStyleFunc)
}

// RenderSimpleTable renders rows under headers without borders
func RenderSimpleTable(headers []string, rows [][]string) string {
	t := NewSimpleTable(headers...)
	for _, row := range rows {
		t.Row(row...)
	}
	return t.String()
}

// RenderTable renders rows under headers, truncating long cells and
// fitting the table to the terminal width
func RenderTable(headers []string, rows [][]string) string {
	t := NewReportTable(headers...).Width(GetTerminalWidth())
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = Truncate(cell, Display.MaxCellWidth)
		}
		t.Row(cells...)
	}
	return t.String()
}

// defaultTableStyleFunc provides default styling for table cells
func defaultTableStyleFunc(row, col int) lipgloss.Style {
	switch {
	case row == table.HeaderRow:
		return TableHeaderStyle
	case row%2 == 0:
		return TableCellStyle
	default:
		return TableRowAltStyle
	}
}

// simpleTableStyleFunc provides styling for simple tables (no alternating rows)
func simpleTableStyleFunc(row, col int) lipgloss.Style {
	if row == table.HeaderRow {
		return TableHeaderStyle
	}
	return TableCellStyle
}
