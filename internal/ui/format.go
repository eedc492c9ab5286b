package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/goaltools/internal/governance"
)

// Truncate truncates text to maxLen with an ellipsis if needed
// Uses lipgloss for proper ANSI-aware width handling
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	width := lipgloss.Width(text)
	if width <= maxLen {
		return text
	}

	if maxLen <= 3 {
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}

	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

func Pad(text string, width int, align lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, align, text)
}

// RenderBulletList renders a list with bullets
func RenderBulletList(items []string) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, DimStyle.Render("  • ")+item)
	}
	return strings.Join(lines, "\n")
}

func RenderKeyValue(key string, value string) string {
	keyStyled := DimStyle.Render(key + ":")
	return fmt.Sprintf("%s %s", keyStyled, value)
}

func RenderKeyValueList(pairs map[string]string, keys []string) string {
	var lines []string

	maxKeyLen := 0
	for _, key := range keys {
		maxKeyLen = max(maxKeyLen, lipgloss.Width(key))
	}

	for _, key := range keys {
		paddedKey := Pad(key, maxKeyLen, lipgloss.Left)
		keyStyled := DimStyle.Render(paddedKey + ":")
		lines = append(lines, fmt.Sprintf("%s %s", keyStyled, pairs[key]))
	}

	return strings.Join(lines, "\n")
}

// FormatRepoInfo renders the governance location of a repository
func FormatRepoInfo(repo string, info governance.RepoInfo, tags []string) string {
	pairs := map[string]string{
		"Repository":  Highlight(repo),
		"Team":        info.Team,
		"Deliverable": info.Deliverable,
		"Tags":        strings.Join(tags, ", "),
	}
	if len(tags) == 0 {
		pairs["Tags"] = Dim("none")
	}
	return RenderKeyValueList(pairs, []string{"Repository", "Team", "Deliverable", "Tags"})
}

// FormatTeamPreview renders the preview pane shown while picking a team
func FormatTeamPreview(name string, team governance.Team) string {
	var repos []string
	for _, deliverable := range team.Deliverables {
		repos = append(repos, deliverable.Repos...)
	}
	slices.Sort(repos)

	lines := []string{
		Highlight(name),
		RenderKeyValue("Deliverables", fmt.Sprint(len(team.Deliverables))),
		RenderKeyValue("Repositories", fmt.Sprint(len(repos))),
		"",
	}
	limit := Display.MaxPreviewRepos
	if len(repos) > limit {
		lines = append(lines, RenderBulletList(repos[:limit]), Dim(fmt.Sprintf("  ... and %d more", len(repos)-limit)))
	} else {
		lines = append(lines, RenderBulletList(repos))
	}
	return strings.Join(lines, "\n")
}
