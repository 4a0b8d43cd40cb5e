package cmd

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorMuted)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	tokenTypeStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)

func renderTitle(s string) string {
	if plainOut {
		return s
	}
	return titleStyle.Render(s)
}

func renderError(s string) string {
	if plainOut {
		return "error: " + s
	}
	return errorStyle.Render("error: " + s)
}

func renderOK(s string) string {
	if plainOut {
		return s
	}
	return okStyle.Render(s)
}

func renderMuted(s string) string {
	if plainOut {
		return s
	}
	return mutedStyle.Render(s)
}
