package ui

import (
	"strings"

	"safetydesk/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders the context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderFormHelp(width)
	}
	return renderDashboardHelp(width)
}

func renderDashboardHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("n/N", "filter"),
		helpKey("a", "report"),
		helpKey("t", "status"),
		helpKey("d", "archive"),
		helpKey("r", "refresh"),
		helpKey("?", "help"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("←/→", "pick value"),
		helpKey("ctrl+s", "submit"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderConfirmHelp(width int) string {
	keys := []string{
		helpKey("y", "archive"),
		helpKey("n/esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Dashboard"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"tab / shift+tab", "Cycle active column"},
			{"s / S", "Push sort on active column asc/desc"},
			{"u", "Pop the primary sort key"},
			{"n / N", "Filter by selected value / clear that filter"},
			{"F", "Reset all filters and sorting"},
			{"t", "Advance status of selected incident"},
			{"d", "Archive selected incident (asks first)"},
			{"A", "Toggle archived incidents"},
			{"r", "Refresh from backend"},
			{"x", "Dismiss oldest toast"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"esc", "Clear error banner"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Report Form"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"← / →", "Pick location, category or severity"},
			{"ctrl+s", "Submit"},
			{"esc", "Cancel"},
		}),
		titleSection("Sorting"),
		helpSection([]helpItem{
			{"", "The most recent sort key is primary; older keys break ties."},
			{"", "Sorting the same column again moves it back to primary."},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		if item.key == "" {
			lines = append(lines, "  "+HelpDescStyle.Render(item.desc))
			continue
		}
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
