package ui

// DisplayConfig holds configuration for UI rendering
type DisplayConfig struct {
	// Truncation limits
	MaxCellWidth    int
	MaxPreviewRepos int

	DefaultTerminalWidth int

	// Tree settings
	TreeEnumerator TreeEnumStyle
}

// TreeEnumStyle defines tree line styles
type TreeEnumStyle int

const (
	TreeRounded TreeEnumStyle = iota // ╰─ style
	TreeDefault                      // └─ style
)

// DefaultConfig returns the default display configuration
func DefaultConfig() DisplayConfig {
	return DisplayConfig{
		MaxCellWidth:    60,
		MaxPreviewRepos: 20,

		DefaultTerminalWidth: 120,

		TreeEnumerator: TreeRounded,
	}
}

// Global display configuration (can be overridden)
var Display = DefaultConfig()

// SetDisplayConfig updates the global display configuration
func SetDisplayConfig(c DisplayConfig) {
	Display = c
}
