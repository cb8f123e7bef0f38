package ui

import (
	"safetydesk/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// Badge colors are plain lookup tables keyed on the closed enums; values
// outside the vocabularies render muted.

var severityColors = map[string]lipgloss.Color{
	model.SeverityLow:    ColorGreen,
	model.SeverityMedium: ColorYellow,
	model.SeverityHigh:   ColorRed,
}

var statusColors = map[string]lipgloss.Color{
	model.StatusOpen:          ColorOrange,
	model.StatusInvestigating: ColorYellow,
	model.StatusResolved:      ColorGreen,
}

// SeverityLabel renders a colored severity badge.
func SeverityLabel(severity string) string {
	color, ok := severityColors[severity]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(severity)
}

// StatusBadge renders a colored status badge.
func StatusBadge(status string) string {
	color, ok := statusColors[status]
	if !ok {
		color = ColorMuted
	}
	return lipgloss.NewStyle().Foreground(color).Render("● " + status)
}
