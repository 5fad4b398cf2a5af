// Package tui holds the shared lipgloss styles for command output.
// Colors use the basic ANSI palette so they follow the terminal theme.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
)

func Header(text string) string {
	return HeaderStyle.Render(text)
}

func Success(text string) string {
	return SuccessStyle.Render(text)
}

func Warning(text string) string {
	return WarningStyle.Render(text)
}

func Error(text string) string {
	return ErrorStyle.Render(text)
}

func Muted(text string) string {
	return MutedStyle.Render(text)
}

func Key(text string) string {
	return KeyStyle.Render(text)
}

func Label(text string) string {
	return LabelStyle.Render(text)
}

// Status glyphs shared by sync, ls and watch output.

func OK(text string) string {
	return SuccessStyle.Render("✓") + " " + text
}

func Skip(text string) string {
	return MutedStyle.Render("•") + " " + text
}

func Alert(text string) string {
	return WarningStyle.Render("⚠") + " " + text
}

func Fail(text string) string {
	return ErrorStyle.Render("✗") + " " + text
}

// KeyList renders key names as a comma separated list.
func KeyList(keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = Key(k)
	}
	return strings.Join(parts, ", ")
}
