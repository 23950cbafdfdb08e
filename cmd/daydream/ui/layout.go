// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for panel sizing
const (
	HeaderHeight  = 1
	FooterHeight  = 1
	SidebarWidth  = 18
	ToastWidth    = 44
	ContentIndent = 2

	// Content padding inside the main panel (Styles.Content)
	ContentPaddingH = 2
	ContentPaddingV = 1

	// Responsive breakpoints
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16
	CompactModeWidth      = 90
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	MaxWidth       int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal
// size. maxWidth caps the usable width; zero means no cap.
func NewLayoutConfig(width, height, maxWidth int) LayoutConfig {
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		MaxWidth:       maxWidth,
		IsCompact:      width < CompactModeWidth,
	}
}

// TooSmall reports whether the terminal is below the supported minimum.
func (l LayoutConfig) TooSmall() bool {
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}

// SidebarWidth is zero in compact mode, where the menu collapses into the footer.
func (l LayoutConfig) SidebarWidth() int {
	if l.IsCompact {
		return 0
	}
	return SidebarWidth
}

// ContentWidth returns the usable text width of the main panel
func (l LayoutConfig) ContentWidth() int {
	return clampMin(l.TerminalWidth-l.SidebarWidth()-ContentPaddingH*2-1, 10)
}

// ContentHeight returns the usable text height of the main panel
func (l LayoutConfig) ContentHeight() int {
	return clampMin(l.TerminalHeight-HeaderHeight-FooterHeight-ContentPaddingV*2, 3)
}

func clampMin(v, lo int) int {
	if v < lo {
		return lo
	}
	return v
}
