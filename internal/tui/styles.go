package tui

import "github.com/charmbracelet/lipgloss"

var (
	headerColor = lipgloss.Color("#F780FF")
	tierColor   = lipgloss.Color("#BD93F9")
	accentColor = lipgloss.Color("#FF79C6")
	textColor   = lipgloss.Color("#E9E9F4")
	mutedColor  = lipgloss.Color("#6272A4")
	infoColor   = lipgloss.Color("#8BE9FD")
	errorColor  = lipgloss.Color("#FF5555")
	okColor     = lipgloss.Color("#50FA7B")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(headerColor).
			Bold(true)

	leadStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(infoColor).
			Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(errorColor).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor)

	noticeStyle = lipgloss.NewStyle().Foreground(okColor)

	tierNameStyle = lipgloss.NewStyle().
			Foreground(tierColor).
			Bold(true)

	tierSummaryStyle = lipgloss.NewStyle().Foreground(textColor)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor)
)
