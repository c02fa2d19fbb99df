package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	errorColor     = lipgloss.Color("#FF4B4B")
	mutedColor     = lipgloss.Color("#666666")
	borderColor    = lipgloss.Color("#383838")

	// Header styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	// Pane styles
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Occupancy bar styles
	barEmptyStyle = lipgloss.NewStyle().Foreground(borderColor)
	barLowStyle   = lipgloss.NewStyle().Foreground(successColor)
	barMidStyle   = lipgloss.NewStyle().Foreground(warningColor)
	barHighStyle  = lipgloss.NewStyle().Foreground(errorColor)

	trendStyle = lipgloss.NewStyle().Foreground(secondaryColor)

	// Status bar styles
	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Help overlay
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)
)

// barStyle picks the fill color for a utilization ratio.
func barStyle(ratio float64) lipgloss.Style {
	switch {
	case ratio >= 0.9:
		return barHighStyle
	case ratio >= 0.7:
		return barMidStyle
	default:
		return barLowStyle
	}
}
