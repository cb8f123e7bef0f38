package ui

import (
	"strings"

	"safetydesk/internal/model"
	"safetydesk/internal/triage"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// submitDraftMsg is emitted when the form passes validation and the
// draft is ready to send.
type submitDraftMsg struct {
	draft model.NewIncident
}

const (
	fieldLocation = iota
	fieldCategory
	fieldSeverity
	fieldDescription
	fieldReportedBy
	fieldPhotoURL
	fieldCount
)

// IncidentFormModel represents the incident report form. Location,
// category and severity are closed-enum selectors; the rest are free
// text. Validation runs on submit and keeps the draft on failure.
type IncidentFormModel struct {
	focusedField int

	// Selector indexes into the model vocabularies; -1 means unset.
	location int
	category int
	severity int

	inputs      []textinput.Model
	fieldErrors map[string]string
}

// NewIncidentFormModel creates an empty report form.
func NewIncidentFormModel() *IncidentFormModel {
	inputs := make([]textinput.Model, 3)

	// Description
	inputs[0] = textinput.New()
	inputs[0].Placeholder = "What happened?"
	inputs[0].CharLimit = 500

	// Reported by
	inputs[1] = textinput.New()
	inputs[1].Placeholder = "Your name (optional)"
	inputs[1].CharLimit = 100

	// Photo URL
	inputs[2] = textinput.New()
	inputs[2].Placeholder = "https://... (optional)"
	inputs[2].CharLimit = 300

	return &IncidentFormModel{
		focusedField: fieldLocation,
		location:     -1,
		category:     -1,
		severity:     -1,
		inputs:       inputs,
	}
}

// Draft builds the submission payload from the current field values.
func (m *IncidentFormModel) Draft() model.NewIncident {
	return model.NewIncident{
		Location:    selectorValue(model.Locations, m.location),
		Category:    selectorValue(model.Categories, m.category),
		Severity:    selectorValue(model.Severities, m.severity),
		Description: strings.TrimSpace(m.inputs[0].Value()),
		ReportedBy:  strings.TrimSpace(m.inputs[1].Value()),
		PhotoURL:    strings.TrimSpace(m.inputs[2].Value()),
	}
}

func selectorValue(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}

// Update handles form input.
func (m IncidentFormModel) Update(msg tea.Msg) (IncidentFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocusedInput(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg {
			return model.FormCancelledMsg{}
		}
	case "ctrl+s":
		return m.submit()
	case "tab", "enter":
		m.nextField()
		return m, nil
	case "shift+tab":
		m.prevField()
		return m, nil
	}

	if m.isSelectorField(m.focusedField) {
		switch keyMsg.String() {
		case "left", "h":
			m.cycleSelector(-1)
		case "right", "l", " ":
			m.cycleSelector(1)
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m IncidentFormModel) submit() (IncidentFormModel, tea.Cmd) {
	draft := m.Draft()
	errs := triage.Validate(draft)
	if len(errs) > 0 {
		m.fieldErrors = errs
		return m, nil
	}

	m.fieldErrors = nil
	return m, func() tea.Msg {
		return submitDraftMsg{draft: draft}
	}
}

func (m *IncidentFormModel) isSelectorField(field int) bool {
	return field == fieldLocation || field == fieldCategory || field == fieldSeverity
}

func (m *IncidentFormModel) cycleSelector(delta int) {
	switch m.focusedField {
	case fieldLocation:
		m.location = cycleIndex(m.location, delta, len(model.Locations))
	case fieldCategory:
		m.category = cycleIndex(m.category, delta, len(model.Categories))
	case fieldSeverity:
		m.severity = cycleIndex(m.severity, delta, len(model.Severities))
	}
}

func cycleIndex(idx, delta, size int) int {
	idx += delta
	if idx < 0 {
		idx = size - 1
	}
	if idx >= size {
		idx = 0
	}
	return idx
}

func (m IncidentFormModel) updateFocusedInput(msg tea.Msg) (IncidentFormModel, tea.Cmd) {
	idx, ok := m.textInputIndex(m.focusedField)
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m *IncidentFormModel) textInputIndex(field int) (int, bool) {
	switch field {
	case fieldDescription:
		return 0, true
	case fieldReportedBy:
		return 1, true
	case fieldPhotoURL:
		return 2, true
	default:
		return 0, false
	}
}

func (m *IncidentFormModel) nextField() {
	m.blurFocused()
	m.focusedField = (m.focusedField + 1) % fieldCount
	m.focusFocused()
}

func (m *IncidentFormModel) prevField() {
	m.blurFocused()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = fieldCount - 1
	}
	m.focusFocused()
}

func (m *IncidentFormModel) blurFocused() {
	if idx, ok := m.textInputIndex(m.focusedField); ok {
		m.inputs[idx].Blur()
	}
}

func (m *IncidentFormModel) focusFocused() {
	if idx, ok := m.textInputIndex(m.focusedField); ok {
		m.inputs[idx].Focus()
	}
}

// View renders the form.
func (m *IncidentFormModel) View(width, height int) string {
	var fields []string

	fields = append(fields, m.renderSelector("Location *", "location", model.Locations, m.location, m.focusedField == fieldLocation))
	fields = append(fields, m.renderSelector("Category *", "category", model.Categories, m.category, m.focusedField == fieldCategory))
	fields = append(fields, m.renderSelector("Severity *", "severity", model.Severities, m.severity, m.focusedField == fieldSeverity))
	fields = append(fields, m.renderInput("Description *", "description", 0, m.focusedField == fieldDescription))
	fields = append(fields, m.renderInput("Reported by", "reported_by", 1, m.focusedField == fieldReportedBy))
	fields = append(fields, m.renderInput("Photo URL", "photo_url", 2, m.focusedField == fieldPhotoURL))

	formContent := strings.Join(fields, "\n")

	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(formContent)
}

func (m *IncidentFormModel) renderSelector(label, errKey string, options []string, selected int, focused bool) string {
	var rendered []string
	for i, opt := range options {
		style := BreadcrumbStyle
		if i == selected {
			style = BreadcrumbActiveStyle.Bold(true)
			opt = "[" + opt + "]"
		}
		rendered = append(rendered, style.Render(opt))
	}
	if selected < 0 {
		rendered = append([]string{BreadcrumbStyle.Italic(true).Render("(none)")}, rendered...)
	}

	row := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		strings.Join(rendered, "  "),
	)
	return m.wrapField(row, errKey, focused)
}

func (m *IncidentFormModel) renderInput(label, errKey string, inputIdx int, focused bool) string {
	row := lipgloss.JoinVertical(
		lipgloss.Left,
		LabelStyle.Render(label),
		m.inputs[inputIdx].View(),
	)
	return m.wrapField(row, errKey, focused)
}

func (m *IncidentFormModel) wrapField(content, errKey string, focused bool) string {
	style := BorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	field := style.Render(content)
	if msg, ok := m.fieldErrors[errKey]; ok {
		field = lipgloss.JoinVertical(lipgloss.Left, field, ErrorStyle.Render(msg))
	}
	return field
}
