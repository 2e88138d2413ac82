// Package ui holds the console styles used by command output.
package ui

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var (
	Primary = lipgloss.Color("4")
	Success = lipgloss.Color("2")
	Warning = lipgloss.Color("3")
	Danger  = lipgloss.Color("1")
	Muted   = lipgloss.Color("8")
)

var (
	Title   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Label   = lipgloss.NewStyle().Bold(true)
	Ok      = lipgloss.NewStyle().Foreground(Success)
	Warn    = lipgloss.NewStyle().Foreground(Warning)
	Error   = lipgloss.NewStyle().Bold(true).Foreground(Danger)
	Dim     = lipgloss.NewStyle().Foreground(Muted)
	Added   = lipgloss.NewStyle().Foreground(Success)
	Removed = lipgloss.NewStyle().Foreground(Danger)
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureColor turns styling off when disabled is set, NO_COLOR is
// present, or w is not a terminal.
func ConfigureColor(w io.Writer, disabled bool) {
	if _, noColor := os.LookupEnv("NO_COLOR"); disabled || noColor || !IsTerminal(w) {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}
