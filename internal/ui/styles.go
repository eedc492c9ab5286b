package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/goaltools/internal/gerrit"
)

// Color palette
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6366F1") // Indigo

	// Status colors
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorInfo    = lipgloss.Color("#3B82F6") // Blue

	// Role colors
	ColorOwner    = lipgloss.Color("#8B5CF6") // Purple
	ColorUploader = lipgloss.Color("#6366F1") // Indigo
	ColorReviewer = lipgloss.Color("#10B981") // Green
	ColorApprover = lipgloss.Color("#F59E0B") // Amber
	ColorPlusOne  = lipgloss.Color("#9CA3AF") // Light gray

	// Text colors
	ColorText       = lipgloss.Color("#F3F4F6") // Light gray
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Gray
	ColorTextBright = lipgloss.Color("#FFFFFF") // White

	// Background colors
	ColorBgMuted = lipgloss.Color("#111827") // Darker gray

	// Border colors
	ColorBorder = lipgloss.Color("#374151") // Medium gray
)

// Text styles
var (
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Message styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextBright).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableRowAltStyle = lipgloss.NewStyle().
				Background(ColorBgMuted).
				Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// Tree styles
var (
	TreeRootStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	TreeBranchStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	TreeEnumeratorStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)
)

// GetRoleStyle returns the style for a review participant role
func GetRoleStyle(role string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(GetRoleColor(role))
}

// RenderRole renders a role name in its role color
func RenderRole(role string) string {
	return GetRoleStyle(role).Render(role)
}

// GetRoleColor returns the color for a review participant role
func GetRoleColor(role string) lipgloss.Color {
	switch gerrit.Role(role) {
	case gerrit.RoleOwner:
		return ColorOwner
	case gerrit.RoleUploader:
		return ColorUploader
	case gerrit.RoleReviewer:
		return ColorReviewer
	case gerrit.RoleApprover:
		return ColorApprover
	case gerrit.RolePlusOne:
		return ColorPlusOne
	default:
		return ColorText
	}
}
