package ui

import (
	"fmt"

	"safetydesk/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHealth renders the backend health indicator for the header.
func RenderHealth(health model.Health) string {
	var style lipgloss.Style
	var label string

	switch health.Status {
	case model.HealthChecking:
		style = BreadcrumbStyle
		label = "◌ checking"
	case model.HealthOK:
		style = lipgloss.NewStyle().Foreground(ColorGreen)
		label = "● online"
	default:
		style = lipgloss.NewStyle().Foreground(ColorRed)
		label = "● degraded"
	}

	if health.DB != "" && health.DB != model.DBUnknown {
		label = fmt.Sprintf("%s · db %s", label, health.DB)
	}
	return style.Render(label)
}
