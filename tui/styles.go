package tui

import (
	"github.com/charmbracelet/lipgloss"

	"poddash/types"
)

// Color palette
const (
	colorPrimary   = "#7D56F4"
	colorSuccess   = "#04B575"
	colorWarning   = "#FF8800"
	colorError     = "#FF5555"
	colorInfo      = "#626262"
	colorHighlight = "#FAFAFA"
	colorBorder    = "#874BFD"
)

// Styles for the dashboard
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			MarginTop(1).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSuccess))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorInfo))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(1, 2)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight)).
			Background(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorHighlight))

	statStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(colorInfo)).
			Padding(0, 2).
			MarginRight(1)
)

// statusBadge renders an episode status with its color.
func statusBadge(s types.Status) string {
	switch s {
	case types.StatusCompleted:
		return statusStyle.Render(s.Label())
	case types.StatusProcessing, types.StatusPending:
		return warnStyle.Render(s.Label())
	case types.StatusFailed:
		return errorStyle.Render(s.Label())
	default:
		return infoStyle.Render(s.Label())
	}
}

// feedBadge renders a feed's health.
func feedBadge(s types.FeedStatus) string {
	if s == types.FeedError {
		return errorStyle.Render("error")
	}
	return statusStyle.Render("active")
}
