package output

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/sqlassist/pkg/core"
)

// Styles holds the lipgloss styles used by commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
}

// NewStyles returns colored styles bound to w's color profile.
func NewStyles(w io.Writer) *Styles {
	return newStyles(lipgloss.NewRenderer(w))
}

// PlainStyles returns styles that never emit escape codes.
func PlainStyles(w io.Writer) *Styles {
	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(termenv.Ascii)
	return newStyles(lr)
}

func newStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		Header2: lr.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("243")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("46")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("214")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Info:    lr.NewStyle().Foreground(lipgloss.Color("39")),
		Path:    lr.NewStyle().Foreground(lipgloss.Color("246")).Underline(true),
		Code:    lr.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

// Severity returns the style for a diagnostic severity.
func (s *Styles) Severity(sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return s.Error
	case core.SeverityWarning:
		return s.Warning
	case core.SeverityInfo:
		return s.Info
	default:
		return s.Muted
	}
}
