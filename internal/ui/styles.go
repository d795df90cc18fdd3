package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles used by reporters and views.
type Styles struct {
	enabled bool

	// Grade styles
	GradeA lipgloss.Style
	GradeB lipgloss.Style
	GradeC lipgloss.Style
	GradeU lipgloss.Style

	// Score deltas
	Positive lipgloss.Style
	Negative lipgloss.Style
	Dim      lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Accent    lipgloss.Style
	Separator lipgloss.Style
	Selected  lipgloss.Style

	// Priority arrows, highest first (degraded to ASCII when not interactive)
	Arrows [5]string
}

// NewStyles creates a Styles instance. When enabled is false, styles
// return text unchanged.
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.GradeA = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
		s.GradeB = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Yellow
		s.GradeC = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Red
		s.GradeU = lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // Magenta

		s.Positive = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.Negative = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		s.Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
		s.Selected = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

		s.Arrows = [5]string{"\u2191", "\u2197", "\u2192", "\u2198", "\u2193"}
	} else {
		plain := lipgloss.NewStyle()
		s.GradeA, s.GradeB, s.GradeC, s.GradeU = plain, plain, plain, plain
		s.Positive, s.Negative, s.Dim = plain, plain, plain
		s.Header, s.Subheader, s.Path, s.Accent, s.Separator = plain, plain, plain, plain, plain
		s.Selected = plain

		s.Arrows = [5]string{"^", "/", "-", "\\", "v"}
	}

	return s
}

// Enabled returns whether styling is enabled.
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Grade styles a grade letter.
func (s *Styles) Grade(letter string) string {
	switch letter {
	case "A":
		return s.GradeA.Render(letter)
	case "B":
		return s.GradeB.Render(letter)
	case "C":
		return s.GradeC.Render(letter)
	default:
		return s.GradeU.Render(letter)
	}
}

// Arrow maps an object priority to an arrow: 4 and up points up, below -2
// points down.
func (s *Styles) Arrow(priority int) string {
	switch {
	case priority >= 4:
		return s.Arrows[0]
	case priority >= 2:
		return s.Arrows[1]
	case priority >= 0:
		return s.Arrows[2]
	case priority >= -2:
		return s.Arrows[3]
	default:
		return s.Arrows[4]
	}
}
