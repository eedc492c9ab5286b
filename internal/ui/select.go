package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"
)

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectTeam presents a fuzzy finder to pick one of names, with preview
// rendering the preview pane. It returns "" if the user cancelled.
func SelectTeam(names []string, preview func(name string) string) (string, error) {
	// Flush stdout/stderr before starting fuzzy finder to clear any ANSI sequences
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string {
			return names[i]
		},
		fuzzyfinder.WithPromptString("team> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 || preview == nil {
				return ""
			}
			return preview(names[i])
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return names[idx], nil
}
