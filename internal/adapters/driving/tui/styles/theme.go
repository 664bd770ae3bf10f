// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
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

	// Published is the default colour of published paths.
	Published lipgloss.Color

	// Draft is the default colour of unpublished paths.
	Draft lipgloss.Color

	// Connector marks vertical connectors on the canvas.
	Connector lipgloss.Color

	// Tag marks tagged locations on the canvas.
	Tag lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#7C3AED"), // Purple
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Published:  lipgloss.Color("#89B4FA"), // Blue
		Draft:      lipgloss.Color("#FAB387"), // Peach
		Connector:  lipgloss.Color("#F5C2E7"), // Pink
		Tag:        lipgloss.Color("#94E2D5"), // Teal
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

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// Canvas style for the map frame.
	Canvas lipgloss.Style

	// Published style for published path cells.
	Published lipgloss.Style

	// Draft style for unpublished path cells.
	Draft lipgloss.Style

	// Buffer style for the points being drawn.
	Buffer lipgloss.Style

	// Connector style for connector cells.
	Connector lipgloss.Style

	// Tag style for tag cells.
	Tag lipgloss.Style

	// Cursor style for the canvas cursor.
	Cursor lipgloss.Style

	// Dialog style for modal dialogs.
	Dialog lipgloss.Style
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

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Canvas: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border),

		Published: lipgloss.NewStyle().
			Foreground(theme.Published),

		Draft: lipgloss.NewStyle().
			Foreground(theme.Draft),

		Buffer: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),

		Connector: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Connector),

		Tag: lipgloss.NewStyle().
			Foreground(theme.Tag),

		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Warning),

		Dialog: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(theme.Primary).
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

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}){1,2}$`)

// PathStyle returns the style for a path drawn in the given colour.
// Colours that are not hex codes fall back to the published or draft style.
func (s *Styles) PathStyle(colour string, published bool) lipgloss.Style {
	if hexColour.MatchString(colour) {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
	}
	if published {
		return s.Published
	}
	return s.Draft
}
