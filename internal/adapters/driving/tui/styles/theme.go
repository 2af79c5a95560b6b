// Package styles holds the dashboard palette and its lipgloss styles.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette colours the dashboard. Each dataset view has its own accent so the
// active tab and its sparklines match.
type Palette struct {
	// Accent colours titles and the active tab.
	Accent lipgloss.Color

	// Hospitals colours hospital sparklines and section headings.
	Hospitals lipgloss.Color

	// Text is the colour of values and hospital names.
	Text lipgloss.Color

	// Dim is used for labels, dates and hints.
	Dim lipgloss.Color

	// Frame is the metric panel border.
	Frame lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color

	// Fresh marks a latest value reported today or yesterday.
	Fresh lipgloss.Color

	// Stale marks a latest value older than a week.
	Stale lipgloss.Color

	// Alert marks fetch failures.
	Alert lipgloss.Color
}

// DefaultPalette returns the dark dashboard palette.
func DefaultPalette() *Palette {
	return &Palette{
		Accent:    lipgloss.Color("#2A9D8F"),
		Hospitals: lipgloss.Color("#E76F51"),
		Text:      lipgloss.Color("#E9EDF1"),
		Dim:       lipgloss.Color("#7C8594"),
		Frame:     lipgloss.Color("#3D4350"),
		Bar:       lipgloss.Color("#1B1F27"),
		Fresh:     lipgloss.Color("#8AC926"),
		Stale:     lipgloss.Color("#F4A261"),
		Alert:     lipgloss.Color("#E63946"),
	}
}

// Styles are the lipgloss styles built from a palette.
type Styles struct {
	palette *Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	StatusBar lipgloss.Style

	// Label is the fixed-width metric name column. The longest translated
	// field names fit in 34 cells.
	Label lipgloss.Style

	// Value is the right-aligned formatted number column.
	Value lipgloss.Style

	ActiveTab lipgloss.Style
	Tab       lipgloss.Style
	Panel     lipgloss.Style
	Sparkline lipgloss.Style

	// Fresh and Stale colour the age of a latest value.
	Fresh lipgloss.Style
	Stale lipgloss.Style
}

// NewStyles builds the styles for p. A nil palette uses DefaultPalette.
func NewStyles(p *Palette) *Styles {
	if p == nil {
		p = DefaultPalette()
	}

	dim := lipgloss.NewStyle().Foreground(p.Dim)
	return &Styles{
		palette: p,

		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle:  lipgloss.NewStyle().Bold(true).Foreground(p.Hospitals),
		Normal:    lipgloss.NewStyle().Foreground(p.Text),
		Muted:     dim,
		Help:      dim,
		Error:     lipgloss.NewStyle().Foreground(p.Alert),
		StatusBar: dim.Background(p.Bar).Padding(0, 1),

		Label: dim.Width(34),
		Value: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Align(lipgloss.Right).Width(12),

		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent).Padding(0, 1),
		Tab:       dim.Padding(0, 1),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),
		Sparkline: lipgloss.NewStyle().Foreground(p.Hospitals),

		Fresh: lipgloss.NewStyle().Foreground(p.Fresh),
		Stale: lipgloss.NewStyle().Foreground(p.Stale),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the palette the styles were built from.
func (s *Styles) Palette() *Palette {
	return s.palette
}

// Age picks the style for a latest value reported daysAgo days ago.
func (s *Styles) Age(daysAgo int) lipgloss.Style {
	switch {
	case daysAgo <= 1:
		return s.Fresh
	case daysAgo > 7:
		return s.Stale
	default:
		return s.Muted
	}
}
