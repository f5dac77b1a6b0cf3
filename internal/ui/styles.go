package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Band thresholds for coloring scores
const (
	StrongBand = 7.0
	FairBand   = 6.0
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Severity styles
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	Info       lipgloss.Style
	Success    lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Rule      lipgloss.Style
	Separator lipgloss.Style
	Label     lipgloss.Style
	Quote     lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconError      string
	IconWarning    string
	IconSuggestion string
	IconInfo       string
	IconSuccess    string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		// Severity styles
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))       // Red
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))    // Yellow
		s.Suggestion = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
		s.Info = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))       // Blue
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))    // Green

		// Structural styles
		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Rule = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))               // Gray
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Label = lipgloss.NewStyle().Width(22)
		s.Quote = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8"))

		// Unicode icons
		s.IconError = "✗"
		s.IconWarning = "⚠"
		s.IconSuggestion = "💡"
		s.IconInfo = "ℹ"
		s.IconSuccess = "✓"
	} else {
		// No-op styles for non-TTY (plain text output)
		s.Error = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Suggestion = lipgloss.NewStyle()
		s.Info = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()

		s.Header = lipgloss.NewStyle()
		s.Subheader = lipgloss.NewStyle()
		s.Path = lipgloss.NewStyle()
		s.Rule = lipgloss.NewStyle()
		s.Separator = lipgloss.NewStyle()
		s.Label = lipgloss.NewStyle().Width(22)
		s.Quote = lipgloss.NewStyle()

		// ASCII fallback icons
		s.IconError = "ERROR:"
		s.IconWarning = "WARN:"
		s.IconSuggestion = "HINT:"
		s.IconInfo = "INFO:"
		s.IconSuccess = "OK:"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Band returns the style for a band score
func (s *Styles) Band(score float64) lipgloss.Style {
	switch {
	case score >= StrongBand:
		return s.Success
	case score >= FairBand:
		return s.Warning
	default:
		return s.Error
	}
}
