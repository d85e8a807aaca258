// Package pretty renders lint violations with colour and structure for
// interactive terminals. Plain reporters in pkg/reporter stay
// machine-friendly; this package is the human surface.
package pretty

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/yaklabco/marklint/pkg/config"
)

// Styles bundles the lipgloss styles used by the renderer.
type Styles struct {
	Path     lipgloss.Style
	Location lipgloss.Style
	Rule     lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Message  lipgloss.Style
	Summary  lipgloss.Style
}

// NewStyles builds the default style set. With colour disabled every
// style renders as plain text.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{
			Path: plain, Location: plain, Rule: plain,
			Error: plain, Warning: plain, Message: plain, Summary: plain,
		}
	}

	return Styles{
		Path:     lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Rule:     lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Message:  lipgloss.NewStyle(),
		Summary:  lipgloss.NewStyle().Faint(true),
	}
}

// SeverityStyle picks the style for a severity badge.
func (s Styles) SeverityStyle(sev config.Severity) lipgloss.Style {
	if sev == config.SeverityError {
		return s.Error
	}
	return s.Warning
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Width returns the terminal width for f, or the fallback.
func Width(f *os.File, fallback int) int {
	if !IsTerminal(f) {
		return fallback
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
