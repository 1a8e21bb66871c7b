package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary = lipgloss.Color("39")  // Blue
	ColorSuccess = lipgloss.Color("34")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Theme groups the styles used by the report renderers.
// The plain theme leaves text untouched.
type Theme struct {
	Title   lipgloss.Style
	Due     lipgloss.Style
	Pending lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

// NewTheme returns the theme for mode.
func NewTheme(mode Mode) Theme {
	if mode != ModeStyled {
		plain := lipgloss.NewStyle()
		return Theme{Title: plain, Due: plain, Pending: plain, Success: plain, Warning: plain, Muted: plain}
	}
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Due:     lipgloss.NewStyle().Bold(true).Foreground(ColorError),
		Pending: lipgloss.NewStyle().Foreground(ColorSuccess),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// Symbols for visual feedback.
const (
	SymbolCheck   = "✓"
	SymbolCross   = "✗"
	SymbolWarning = "!"
	SymbolBullet  = "•"
)
