package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"safetydesk/internal/api"
	"safetydesk/internal/model"
	"safetydesk/internal/triage"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Model is the root Bubble Tea model. It owns all view state: the
// incident collection, health, filters, the form draft, the error
// banner and the toast stack. Sub-models never talk to the backend;
// every network round trip is a command issued from here.
type Model struct {
	client *api.Client
	log    *zap.Logger

	screen model.Screen
	mode   model.Mode
	gState GState

	width  int
	height int

	health          model.Health
	incidents       []model.Incident
	filters         triage.FilterState
	includeArchived bool

	loading    bool
	submitting bool
	banner     *api.APIError
	info       string

	// listSeq is the newest issued list request. Responses tagged with
	// an older sequence number lost the race and are discarded.
	listSeq uint64

	// pendingArchive holds the incident awaiting y/n confirmation.
	pendingArchive *model.Incident

	dashboard *DashboardModel
	form      *IncidentFormModel
	toasts    ToastStack

	keys        KeyMap
	showingHelp bool
}

// New creates the root model.
func New(client *api.Client, log *zap.Logger, includeArchived bool) Model {
	if log == nil {
		log = zap.NewNop()
	}
	return Model{
		client:          client,
		log:             log,
		screen:          model.ScreenDashboard,
		mode:            model.ModeNav,
		gState:          GStateIdle,
		health:          model.Health{Status: model.HealthChecking, DB: model.DBUnknown},
		includeArchived: includeArchived,
		loading:         true,
		listSeq:         1,
		dashboard:       NewDashboardModel(),
		keys:            DefaultKeyMap(),
	}
}

// Init runs the health check, then the initial list load. The list load
// is attempted regardless of the health check outcome.
func (m Model) Init() tea.Cmd {
	return tea.Sequence(
		checkHealthCmd(m.client),
		loadIncidentsCmd(m.client, m.includeArchived, m.listSeq),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle ctrl+c globally
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.pendingArchive != nil {
			return m.handleArchiveConfirm(msg)
		}

		if msg.String() == "?" && m.mode == model.ModeNav {
			m.showingHelp = !m.showingHelp
			return m, nil
		}
		if m.showingHelp {
			if msg.String() == "esc" || msg.String() == "?" {
				m.showingHelp = false
			}
			return m, nil
		}

		if m.mode == model.ModeNav {
			return m.handleNavMode(msg)
		}
		return m.handleInsertMode(msg)

	case model.HealthLoadedMsg:
		m.health = msg.Health
		return m, nil

	case model.HealthCheckFailedMsg:
		m.health = model.Health{Status: model.HealthDegraded, DB: model.DBDown}
		m.banner = api.AsAPIError(msg.Err, "Failed to check backend health")
		return m, nil

	case model.IncidentsLoadedMsg:
		if msg.Seq < m.listSeq {
			// A newer load is already in flight; this response is stale.
			return m, nil
		}
		m.loading = false
		m.incidents = msg.Incidents
		m.banner = nil
		m.refreshVisible()
		return m, nil

	case model.IncidentsLoadFailedMsg:
		if msg.Seq < m.listSeq {
			return m, nil
		}
		m.loading = false
		m.banner = api.AsAPIError(msg.Err, "Failed to fetch incidents")
		return m, nil

	case model.IncidentCreatedMsg:
		m.submitting = false
		m.mode = model.ModeNav
		m.screen = model.ScreenDashboard
		m.form = nil
		toastCmd := m.toasts.Push(ToastSuccess, "Incident submitted successfully.")
		return m, tea.Batch(toastCmd, m.reloadIncidents())

	case model.CreateFailedMsg:
		// The form (and the draft) stays up so no input is lost.
		m.submitting = false
		m.banner = api.AsAPIError(msg.Err, "Failed to create incident")
		return m, m.toasts.Push(ToastError, m.banner.Message)

	case model.StatusChangedMsg:
		toastCmd := m.toasts.Push(ToastSuccess, fmt.Sprintf("Status set to %s.", msg.Status))
		return m, tea.Batch(toastCmd, m.reloadIncidents())

	case model.StatusChangeFailedMsg:
		m.banner = api.AsAPIError(msg.Err, "Failed to update status")
		return m, m.toasts.Push(ToastError, m.banner.Message)

	case model.IncidentArchivedMsg:
		toastCmd := m.toasts.Push(ToastSuccess, "Incident archived.")
		return m, tea.Batch(toastCmd, m.reloadIncidents())

	case model.ArchiveFailedMsg:
		m.banner = api.AsAPIError(msg.Err, "Failed to archive incident")
		return m, m.toasts.Push(ToastError, m.banner.Message)

	case model.FormCancelledMsg:
		m.mode = model.ModeNav
		m.screen = model.ScreenDashboard
		m.form = nil
		return m, nil

	case submitDraftMsg:
		if m.submitting {
			// Double-submit guard: one create at a time.
			return m, nil
		}
		m.submitting = true
		m.banner = nil
		return m, createIncidentCmd(m.client, msg.draft)

	case toastExpiredMsg:
		m.toasts.Dismiss(msg.id)
		return m, nil

	default:
		if m.mode == model.ModeInsert {
			return m.handleInsertMode(msg)
		}
	}

	return m, nil
}

// handleArchiveConfirm resolves the y/n prompt. Anything but an explicit
// yes cancels without a network call.
func (m Model) handleArchiveConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	target := *m.pendingArchive
	m.pendingArchive = nil
	if msg.String() == "y" || msg.String() == "Y" {
		m.log.Info("archiving incident", zap.Int64("id", target.ID))
		return m, archiveIncidentCmd(m.client, target.ID)
	}
	m.info = "Archive cancelled"
	return m, nil
}

// handleNavMode handles dashboard input.
func (m Model) handleNavMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// "gg" jump-to-top state machine
	if msg.String() == "g" {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		m.dashboard.JumpToTop()
		return m, nil
	}
	if m.gState == GStateFirstG {
		m.gState = GStateIdle
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.dashboard.MoveDown()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.dashboard.MoveUp()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.dashboard.JumpToBottom()
		return m, nil

	case key.Matches(msg, m.keys.HalfPageDown):
		m.dashboard.HalfPageDown(m.height / 2)
		return m, nil

	case key.Matches(msg, m.keys.HalfPageUp):
		m.dashboard.HalfPageUp(m.height / 2)
		return m, nil

	case key.Matches(msg, m.keys.NextColumn):
		m.dashboard.NextColumn()
		return m, nil

	case key.Matches(msg, m.keys.PrevColumn):
		m.dashboard.PrevColumn()
		return m, nil

	case key.Matches(msg, m.keys.SortAsc):
		return m.pushSort(false)

	case key.Matches(msg, m.keys.SortDesc):
		return m.pushSort(true)

	case key.Matches(msg, m.keys.PopSort):
		if len(m.filters.Sorts) == 0 {
			m.info = "No active sort"
			return m, nil
		}
		m.filters.PopSort()
		m.info = "Popped primary sort key"
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.FilterValue):
		field, value, ok := m.dashboard.SelectedFilter()
		if !ok {
			m.info = "No filterable value in selected cell"
			return m, nil
		}
		setFilter(&m.filters, field, value)
		m.info = fmt.Sprintf("Filtered %s=%q", field, value)
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		field, ok := m.dashboard.ActiveFilterField()
		if ok && clearFilter(&m.filters, field) {
			m.info = "Filter cleared"
			m.refreshVisible()
		} else {
			m.info = "No filter on active column"
		}
		return m, nil

	case key.Matches(msg, m.keys.ResetFilters):
		m.filters.Reset()
		m.info = "Filters and sorting reset"
		m.refreshVisible()
		return m, nil

	case key.Matches(msg, m.keys.Report):
		m.mode = model.ModeInsert
		m.screen = model.ScreenForm
		m.form = NewIncidentFormModel()
		m.info = ""
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.loading {
			return m, nil
		}
		m.info = ""
		return m, m.reloadIncidents()

	case key.Matches(msg, m.keys.AdvanceStatus):
		selected := m.dashboard.Selected()
		if selected == nil {
			return m, nil
		}
		next := model.NextStatus(selected.Status)
		m.log.Info("changing status",
			zap.Int64("id", selected.ID),
			zap.String("from", selected.Status),
			zap.String("to", next))
		return m, changeStatusCmd(m.client, selected.ID, next)

	case key.Matches(msg, m.keys.Archive):
		selected := m.dashboard.Selected()
		if selected == nil {
			return m, nil
		}
		target := *selected
		m.pendingArchive = &target
		return m, nil

	case key.Matches(msg, m.keys.ShowArchived):
		m.includeArchived = !m.includeArchived
		if m.includeArchived {
			m.info = "Including archived incidents"
		} else {
			m.info = "Hiding archived incidents"
		}
		return m, m.reloadIncidents()

	case key.Matches(msg, m.keys.DismissToast):
		m.toasts.DismissOldest()
		return m, nil

	case key.Matches(msg, m.keys.ClearBanner):
		m.banner = nil
		m.info = ""
		return m, nil
	}

	return m, nil
}

func (m Model) pushSort(desc bool) (tea.Model, tea.Cmd) {
	sortKey, ok := m.dashboard.ActiveSortKey()
	if !ok {
		m.info = "Active column is not sortable"
		return m, nil
	}
	m.filters.PushSort(sortKey, desc)
	order := "ascending"
	if desc {
		order = "descending"
	}
	m.info = fmt.Sprintf("Sorted %s %s", sortKey, order)
	m.refreshVisible()
	return m, nil
}

// handleInsertMode routes input to the report form.
func (m Model) handleInsertMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	newForm, cmd := m.form.Update(msg)
	m.form = &newForm
	return m, cmd
}

// refreshVisible recomputes the dashboard rows from the incident
// collection and the current filter state. Pure, no network.
func (m *Model) refreshVisible() {
	m.dashboard.SetRows(triage.ComputeVisible(m.incidents, m.filters), len(m.incidents))
}

// reloadIncidents issues a full list reload under a fresh sequence number.
func (m *Model) reloadIncidents() tea.Cmd {
	m.listSeq++
	m.loading = true
	return loadIncidentsCmd(m.client, m.includeArchived, m.listSeq)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	contentHeight := m.height - 4 // header + footer + padding
	var content string
	var breadcrumbParts []string

	switch m.screen {
	case model.ScreenDashboard:
		breadcrumbParts = []string{"Incidents"}
		content = m.dashboard.View(m.width, contentHeight, m.filters, m.loading)
	case model.ScreenForm:
		breadcrumbParts = []string{"Incidents", "Report"}
		if m.form != nil {
			content = m.form.View(m.width, contentHeight)
		}
	}

	header := m.renderHeader(breadcrumbParts)

	var footer string
	if m.pendingArchive != nil {
		footer = renderConfirmHelp(m.width)
	} else {
		footer = RenderHelp(m.screen, m.mode, m.width)
	}

	content = lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight).
		Render(content)

	sections := []string{header}
	if m.banner != nil {
		sections = append(sections, ErrorStyle.Width(m.width).Render("Error: "+m.banner.Message))
	}
	if m.pendingArchive != nil {
		prompt := fmt.Sprintf("Archive incident #%d (%s)? Press y to confirm, any other key to cancel.",
			m.pendingArchive.ID, m.pendingArchive.Location)
		sections = append(sections, WarnStyle.Width(m.width).Render(prompt))
	} else if m.info != "" {
		sections = append(sections, SuccessStyle.Width(m.width).Render(m.info))
	}
	if !m.toasts.Empty() {
		sections = append(sections, m.toasts.View(m.width))
	}
	sections = append(sections, content, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(breadcrumbParts []string) string {
	title := HeaderStyle.Render("safetydesk")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb
	right := RenderHealth(m.health) + "  " + BreadcrumbStyle.Render(time.Now().Format("Mon 02 Jan")) + "  "

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return TitleStyle.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

// Commands

func checkHealthCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		health, err := client.CheckHealth(context.Background())
		if err != nil {
			return model.HealthCheckFailedMsg{Err: err}
		}
		return model.HealthLoadedMsg{Health: health}
	}
}

func loadIncidentsCmd(client *api.Client, includeArchived bool, seq uint64) tea.Cmd {
	return func() tea.Msg {
		incidents, err := client.ListIncidents(context.Background(), includeArchived)
		if err != nil {
			return model.IncidentsLoadFailedMsg{Seq: seq, Err: err}
		}
		return model.IncidentsLoadedMsg{Seq: seq, Incidents: incidents}
	}
}

func createIncidentCmd(client *api.Client, draft model.NewIncident) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateIncident(context.Background(), draft)
		if err != nil {
			return model.CreateFailedMsg{Err: err}
		}
		return model.IncidentCreatedMsg{Incident: created}
	}
}

func changeStatusCmd(client *api.Client, id int64, status string) tea.Cmd {
	return func() tea.Msg {
		patch := model.IncidentPatch{Status: &status}
		if _, err := client.PatchIncident(context.Background(), id, patch); err != nil {
			return model.StatusChangeFailedMsg{Err: err}
		}
		return model.StatusChangedMsg{ID: id, Status: status}
	}
}

func archiveIncidentCmd(client *api.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		if _, err := client.ArchiveIncident(context.Background(), id); err != nil {
			return model.ArchiveFailedMsg{Err: err}
		}
		return model.IncidentArchivedMsg{ID: id}
	}
}
