// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sprout-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme is the palette for dark terminals.
func DarkTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#40A02B"), // Sprout green
		Secondary:  lipgloss.Color("#04A5E5"), // Sky
		Background: lipgloss.Color("#1E1E2E"),
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
	}
}

// LightTheme is the palette for light terminals.
func LightTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2E7D32"),
		Secondary:  lipgloss.Color("#0277BD"),
		Background: lipgloss.Color("#EFF1F5"),
		Foreground: lipgloss.Color("#4C4F69"),
		Muted:      lipgloss.Color("#8C8FA1"),
		Success:    lipgloss.Color("#388E3C"),
		Warning:    lipgloss.Color("#DF8E1D"),
		Error:      lipgloss.Color("#D20F39"),
		Border:     lipgloss.Color("#BCC0CC"),
	}
}

// ThemeFor maps a ui.theme setting to a palette. "system" and unknown
// values follow the terminal background.
func ThemeFor(name string) *Theme {
	switch name {
	case domain.ThemeLight:
		return LightTheme()
	case domain.ThemeDark:
		return DarkTheme()
	default:
		if lipgloss.HasDarkBackground() {
			return DarkTheme()
		}
		return LightTheme()
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Card frames the question and answer.
	Card lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Background).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Status returns the style for a card status badge.
func (s *Styles) Status(status domain.CardStatus) lipgloss.Style {
	switch status {
	case domain.StatusConsolidated:
		return s.Success
	case domain.StatusReview:
		return s.Warning
	default:
		return s.Subtitle
	}
}
