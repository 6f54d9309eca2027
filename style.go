package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#848484", Dark: "#626262"})
	masteredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
)

// stylesEnabled reports whether styled output should be rendered.
// Styles are dropped when stdout is not a terminal or color is disabled
// in the environment.
func stylesEnabled() bool {
	if termenv.EnvNoColor() {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// render applies a style only when styling is enabled.
func render(style lipgloss.Style, s string) string {
	if !stylesEnabled() {
		return s
	}
	return style.Render(s)
}

func keyword(s string) string {
	return render(keywordStyle, s)
}

// paragraph wraps help text at a comfortable width.
func paragraph(s string) string {
	return wordwrap.String(s, 78)
}
