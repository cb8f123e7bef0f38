package ui

import (
	"fmt"
	"strings"

	"safetydesk/internal/model"
	"safetydesk/internal/triage"
	"safetydesk/internal/util"

	"github.com/charmbracelet/lipgloss"
)

type incidentColumn struct {
	key     string
	label   string
	width   int
	sortKey triage.SortKey // empty when the column is not sortable
	filter  bool           // true when the column value can be filtered on
}

// DashboardModel represents the incident table. It renders rows the
// controller hands it; filtering and sorting happen upstream in triage.
type DashboardModel struct {
	rows   []model.Incident
	total  int // size of the unfiltered collection, for empty states
	cursor int
	offset int

	columns      []incidentColumn
	activeColumn int
}

// NewDashboardModel creates the incident table.
func NewDashboardModel() *DashboardModel {
	return &DashboardModel{
		columns: []incidentColumn{
			{key: "created", label: "reported", width: 14, sortKey: triage.SortCreated},
			{key: "location", label: "location", width: 16, sortKey: triage.SortLocation, filter: true},
			{key: "category", label: "category", width: 16, filter: true},
			{key: "severity", label: "severity", width: 12, sortKey: triage.SortSeverity, filter: true},
			{key: "status", label: "status", width: 17, sortKey: triage.SortStatus, filter: true},
			{key: "description", label: "description", width: 28},
			{key: "reporter", label: "reported by", width: 14},
		},
	}
}

// SetRows replaces the visible rows after a recomputation. The cursor is
// clamped rather than reset so re-sorts do not lose the selection point.
func (m *DashboardModel) SetRows(rows []model.Incident, total int) {
	m.rows = rows
	m.total = total
	m.clampCursor()
}

// Selected returns the incident under the cursor, or nil.
func (m *DashboardModel) Selected() *model.Incident {
	if len(m.rows) == 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

// NextColumn moves the active column right, wrapping.
func (m *DashboardModel) NextColumn() {
	m.activeColumn = (m.activeColumn + 1) % len(m.columns)
}

// PrevColumn moves the active column left, wrapping.
func (m *DashboardModel) PrevColumn() {
	m.activeColumn--
	if m.activeColumn < 0 {
		m.activeColumn = len(m.columns) - 1
	}
}

// ActiveSortKey returns the sort key for the active column, if it has one.
func (m *DashboardModel) ActiveSortKey() (triage.SortKey, bool) {
	key := m.columns[m.activeColumn].sortKey
	return key, key != ""
}

// SelectedFilter returns the filter field and value for the cell under
// the cursor in the active column, if that column is filterable.
func (m *DashboardModel) SelectedFilter() (field, value string, ok bool) {
	col := m.columns[m.activeColumn]
	if !col.filter {
		return "", "", false
	}
	selected := m.Selected()
	if selected == nil {
		return "", "", false
	}
	value = m.cellValue(*selected, col.key)
	if value == "" {
		return "", "", false
	}
	return col.key, value, true
}

// ActiveFilterField returns the filter field of the active column, if any.
func (m *DashboardModel) ActiveFilterField() (string, bool) {
	col := m.columns[m.activeColumn]
	return col.key, col.filter
}

func (m *DashboardModel) cellValue(inc model.Incident, key string) string {
	switch key {
	case "created":
		return inc.CreatedAt
	case "location":
		return inc.Location
	case "category":
		return inc.Category
	case "severity":
		return inc.Severity
	case "status":
		return inc.Status
	case "description":
		return inc.Description
	case "reporter":
		return inc.ReportedBy
	default:
		return ""
	}
}

func (m *DashboardModel) clampCursor() {
	if len(m.rows) == 0 {
		m.cursor = 0
		m.offset = 0
		return
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.offset > m.cursor {
		m.offset = m.cursor
	}
}

// MoveDown moves the cursor down.
func (m *DashboardModel) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		if m.cursor >= m.offset+10 {
			m.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (m *DashboardModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		if m.cursor < m.offset {
			m.offset--
		}
	}
}

// JumpToTop jumps to the first row.
func (m *DashboardModel) JumpToTop() {
	m.cursor = 0
	m.offset = 0
}

// JumpToBottom jumps to the last row.
func (m *DashboardModel) JumpToBottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
		if m.cursor >= 10 {
			m.offset = m.cursor - 9
		}
	}
}

// HalfPageDown moves down half a page.
func (m *DashboardModel) HalfPageDown(pageSize int) {
	m.cursor += pageSize / 2
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor >= m.offset+10 {
		m.offset = m.cursor - 9
	}
	m.clampCursor()
}

// HalfPageUp moves up half a page.
func (m *DashboardModel) HalfPageUp(pageSize int) {
	m.cursor -= pageSize / 2
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
}

// Summary counts over the visible rows for the status line.
type summary struct {
	open          int
	investigating int
	highSeverity  int
}

func (m *DashboardModel) summarize() summary {
	var s summary
	for _, inc := range m.rows {
		switch inc.Status {
		case model.StatusOpen:
			s.open++
		case model.StatusInvestigating:
			s.investigating++
		}
		if inc.Severity == model.SeverityHigh {
			s.highSeverity++
		}
	}
	return s
}

// View renders the incident table.
func (m *DashboardModel) View(width, height int, filters triage.FilterState, loading bool) string {
	if len(m.rows) == 0 {
		var emptyMsg string
		switch {
		case loading:
			emptyMsg = "Loading incidents..."
		case m.total == 0:
			emptyMsg = `    No incidents yet.
    Press  a  to report the first one.`
		case filters.HasFilters():
			emptyMsg = "No incidents match the current filters. Press F to reset."
		default:
			emptyMsg = "No incidents to display."
		}
		return EmptyStateStyle.
			Width(width).
			Height(height).
			Render(emptyMsg)
	}

	widths := make([]int, 0, len(m.columns))
	headers := make([]string, 0, len(m.columns))
	totalFixed := 0
	for i, col := range m.columns {
		label := strings.ToUpper(col.label)
		if i == m.activeColumn {
			label = "❋ " + label
		}
		for j := len(filters.Sorts) - 1; j >= 0; j-- {
			if filters.Sorts[j].Key == col.sortKey && col.sortKey != "" {
				arrow := " ↑"
				if filters.Sorts[j].Desc {
					arrow = " ↓"
				}
				// Primary key is the last-pushed directive.
				if j == len(filters.Sorts)-1 {
					label += arrow
				} else {
					label += fmt.Sprintf(" %s%d", strings.TrimSpace(arrow), len(filters.Sorts)-j)
				}
				break
			}
		}
		cellWidth := col.width
		if w := lipgloss.Width(label) + 2; w > cellWidth {
			cellWidth = w
		}
		totalFixed += cellWidth
		widths = append(widths, cellWidth)
		headers = append(headers, label)
	}

	if extra := width - totalFixed - 4; extra > 0 {
		widths[len(widths)-1] += extra
	}

	header := renderTableRow(headers, widths, TableHeaderStyle)

	visibleHeight := height - 3
	var rows []string
	for i := m.offset; i < len(m.rows) && i < m.offset+visibleHeight; i++ {
		inc := m.rows[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(ColorSurface)
		}
		if i == m.cursor {
			style = SelectedRowStyle
		}

		cells := make([]string, 0, len(m.columns))
		for _, col := range m.columns {
			switch col.key {
			case "created":
				cells = append(cells, util.FormatCreatedAt(inc.CreatedAt))
			case "location":
				cells = append(cells, util.TruncateString(inc.Location, col.width-2))
			case "category":
				cells = append(cells, util.TruncateString(inc.Category, col.width-2))
			case "severity":
				if i == m.cursor {
					cells = append(cells, inc.Severity)
				} else {
					cells = append(cells, SeverityLabel(inc.Severity))
				}
			case "status":
				if i == m.cursor {
					cells = append(cells, inc.Status)
				} else {
					cells = append(cells, StatusBadge(inc.Status))
				}
			case "description":
				cells = append(cells, util.TruncateString(inc.Description, col.width-2))
			case "reporter":
				reporter := inc.ReportedBy
				if reporter == "" {
					reporter = "—"
				}
				cells = append(cells, util.TruncateString(reporter, col.width-2))
			}
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}

	s := m.summarize()
	statusParts := []string{
		fmt.Sprintf("%d shown", len(m.rows)),
		fmt.Sprintf("open %d", s.open),
		fmt.Sprintf("investigating %d", s.investigating),
		fmt.Sprintf("high %d", s.highSeverity),
	}
	if len(m.rows) != m.total {
		statusParts[0] = fmt.Sprintf("%d/%d shown", len(m.rows), m.total)
	}
	if loading {
		statusParts = append(statusParts, "refreshing...")
	}
	if fs := renderFilterSummary(filters); fs != "" {
		statusParts = append(statusParts, fs)
	}
	status := StatusBarStyle.Render(strings.Join(statusParts, "  ·  "))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		strings.Join(rows, "\n"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		"",
		status,
	)
}

// renderTableRow renders one table row with per-column widths.
func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
