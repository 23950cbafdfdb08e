// Package ui provides the visual styling for the daydream terminal intranet.
// The palette imitates the corporate portal, with a light and a dark mode
// and a horror palette for the reveals.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette of the portal
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f5f6f8")
	LightForeground = lipgloss.Color("#1b2433")
	LightPrimary    = lipgloss.Color("#1d3c6e") // corporate navy
	LightAccent     = lipgloss.Color("#3a7bd5")
	LightMuted      = lipgloss.Color("#8a93a3")
	LightBorder     = lipgloss.Color("#d5dae2")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#11161f")
	DarkForeground = lipgloss.Color("#e8eaee")
	DarkPrimary    = lipgloss.Color("#7fa7e8")
	DarkAccent     = lipgloss.Color("#3a7bd5")
	DarkMuted      = lipgloss.Color("#5d6778")
	DarkBorder     = lipgloss.Color("#2a3344")
	DarkCard       = lipgloss.Color("#181f2b")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#ffb300")

	// Horror Colors
	HorrorRed   = lipgloss.Color("#b3001b")
	HorrorBlack = lipgloss.Color("#000000")
	TerminalFg  = lipgloss.Color("#b7b7b7")
	Disabled    = lipgloss.Color("#4a4a4a")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeFor resolves a configured theme name. "auto" detects the terminal.
func ThemeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	}
	return DetectTheme()
}

// DetectTheme guesses the terminal background from COLORFGBG, falling back
// to light mode.
func DetectTheme() Theme {
	// Format is usually "foreground;background"
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
			return DarkTheme()
		}
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Sidebar lipgloss.Style
	Card    lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Navigation
	NavItem     lipgloss.Style
	NavActive   lipgloss.Style
	NavDisabled lipgloss.Style
	Selected    lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style
	Badge   lipgloss.Style

	// Toasts
	Toast            lipgloss.Style
	ToastDestructive lipgloss.Style

	// Reveals
	Blackout lipgloss.Style
	Horror   lipgloss.Style
	Terminal lipgloss.Style
	Abnormal lipgloss.Style

	Spinner lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Sidebar: lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(1, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1),

		NavActive: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(theme.Accent),

		NavDisabled: lipgloss.NewStyle().
			Foreground(Disabled).
			Strikethrough(true).
			PaddingLeft(1),

		Selected: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Toast: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		ToastDestructive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Destructive).
			Foreground(Destructive).
			Padding(0, 1),

		Blackout: lipgloss.NewStyle().
			Background(HorrorBlack).
			Foreground(HorrorBlack),

		Horror: lipgloss.NewStyle().
			Background(HorrorBlack).
			Foreground(HorrorRed).
			Bold(true),

		Terminal: lipgloss.NewStyle().
			Background(HorrorBlack).
			Foreground(TerminalFg),

		Abnormal: lipgloss.NewStyle().
			Background(HorrorBlack).
			Foreground(HorrorRed),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// Logo returns the company banner
func Logo(s Styles) string {
	logo := `
 ┌──────────────────────────────┐
 │   (주)백일몽  DAYDREAM CORP.   │
 │      사내 통합 인트라넷        │
 └──────────────────────────────┘`
	return s.Title.Render(logo)
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	if width < 0 {
		width = 0
	}
	return s.Divider.Render(strings.Repeat("─", width))
}
