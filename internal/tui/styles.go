// Package tui provides the BubbleTea-based terminal user interface for heapsched.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors used throughout the TUI.
var (
	ColorPrimary   = lipgloss.Color("12")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorWarning   = lipgloss.Color("226") // Yellow
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("14")  // Cyan
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Base styles.
var (
	// HeaderStyle is used for pane headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// NextStyle highlights the task at the head of the queue.
	NextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("57"))

	// MutedStyle is for secondary/muted text.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	// SuccessStyle is for success indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle is for warning indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ErrorStyle is for error indicators.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// InfoStyle is for informational text.
	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	// HelpStyle is for help text at the bottom.
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// TitleStyle is for the main title bar.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	// StatusBarStyle is for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Background(lipgloss.Color("236"))
)

// PriorityColor returns the color for a task priority.
func PriorityColor(priority int) lipgloss.Color {
	switch {
	case priority >= 8:
		return ColorError
	case priority >= 4:
		return ColorWarning
	default:
		return lipgloss.Color("255")
	}
}

// PriorityStyle returns a style colored for a task priority.
func PriorityStyle(priority int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(PriorityColor(priority))
}

// EventColor returns the color for a playback event kind.
func EventColor(kind string) lipgloss.Color {
	switch kind {
	case "arrive":
		return ColorInfo
	case "exec":
		return ColorSuccess
	case "done":
		return ColorPrimary
	case "error":
		return ColorError
	default:
		return lipgloss.Color("255")
	}
}

// PaneBorder returns a border style for panes.
func PaneBorder(focused bool) lipgloss.Style {
	borderColor := ColorMuted
	if focused {
		borderColor = ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)
}

// Truncate truncates a string to the given maxLen length, adding "..." if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
