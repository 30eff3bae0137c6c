package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// Styles holds the lipgloss styles used for text output.
type Styles struct {
	Header   lipgloss.Style
	Path     lipgloss.Style
	Position lipgloss.Style
	RuleID   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Info     lipgloss.Style
	Hint     lipgloss.Style
	Fixed    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles builds styles bound to w. Unstyled output uses the ASCII
// profile, which renders text without escape codes.
func NewStyles(w io.Writer, styled bool) *Styles {
	lr := lipgloss.NewRenderer(w)
	if !styled {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Styles{
		Header:   lr.NewStyle().Bold(true),
		Path:     lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Position: lr.NewStyle().Foreground(lipgloss.Color("8")),
		RuleID:   lr.NewStyle().Foreground(lipgloss.Color("13")),
		Error:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Warning:  lr.NewStyle().Foreground(lipgloss.Color("11")),
		Info:     lr.NewStyle().Foreground(lipgloss.Color("14")),
		Hint:     lr.NewStyle().Foreground(lipgloss.Color("8")),
		Fixed:    lr.NewStyle().Foreground(lipgloss.Color("10")),
		Success:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Muted:    lr.NewStyle().Faint(true),
	}
}

// Severity returns the style for a severity level.
func (s *Styles) Severity(sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return s.Error
	case lint.SeverityWarning:
		return s.Warning
	case lint.SeverityInfo:
		return s.Info
	default:
		return s.Hint
	}
}
