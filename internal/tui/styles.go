package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/JPM1118/cimcheck/internal/suite"
)

var (
	// Colors
	colorRunning = lipgloss.Color("3")  // yellow
	colorPass    = lipgloss.Color("2")  // green
	colorFail    = lipgloss.Color("1")  // red
	colorPending = lipgloss.Color("8")  // dim gray
	colorHeader  = lipgloss.Color("12") // bright blue
	colorMuted   = lipgloss.Color("8")  // dim
	colorCursor  = lipgloss.Color("6")  // cyan

	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorHeader)

	subheaderStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorCursor).
			Bold(true)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Underline(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	notificationBarStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorFail).
			Bold(true)
)

// statusStyle returns the appropriate style for a sub-test status.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case suite.StatusRunning:
		return lipgloss.NewStyle().Foreground(colorRunning)
	case suite.StatusPass:
		return lipgloss.NewStyle().Foreground(colorPass)
	case suite.StatusFail:
		return lipgloss.NewStyle().Foreground(colorFail).Bold(true)
	case suite.StatusPending:
		return lipgloss.NewStyle().Foreground(colorPending)
	default:
		return lipgloss.NewStyle().Foreground(colorMuted)
	}
}

// statusLabel returns the display text for a status, including indicators.
func statusLabel(status string) string {
	switch status {
	case suite.StatusFail:
		return "FAIL !"
	case suite.StatusRunning:
		return "RUNNING …"
	default:
		return status
	}
}
