package ui

import (
	"testing"

	"safetydesk/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func typeString(t *testing.T, form IncidentFormModel, s string) IncidentFormModel {
	t.Helper()
	for _, r := range s {
		form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return form
}

func TestEmptyFormSubmitAbortsWithFieldErrors(t *testing.T) {
	t.Parallel()
	form := *NewIncidentFormModel()

	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
	require.Len(t, form.fieldErrors, 4)
	require.Contains(t, form.fieldErrors, "location")
	require.Contains(t, form.fieldErrors, "category")
	require.Contains(t, form.fieldErrors, "severity")
	require.Contains(t, form.fieldErrors, "description")
}

func TestSelectorsCycleThroughVocabulary(t *testing.T) {
	t.Parallel()
	form := *NewIncidentFormModel()
	require.Empty(t, form.Draft().Location)

	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, model.Locations[0], form.Draft().Location)

	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, model.Locations[len(model.Locations)-1], form.Draft().Location)
}

func TestValidFormSubmitEmitsDraft(t *testing.T) {
	t.Parallel()
	form := *NewIncidentFormModel()

	// Pick the first option for each selector, then fill the description.
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight}) // location
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight}) // category
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight}) // severity
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form = typeString(t, form, "Forklift tipped")

	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Empty(t, form.fieldErrors)
	require.NotNil(t, cmd)

	msg := cmd()
	submit, ok := msg.(submitDraftMsg)
	require.True(t, ok)
	require.Equal(t, model.Locations[0], submit.draft.Location)
	require.Equal(t, model.Categories[0], submit.draft.Category)
	require.Equal(t, model.Severities[0], submit.draft.Severity)
	require.Equal(t, "Forklift tipped", submit.draft.Description)
	require.Empty(t, submit.draft.ReportedBy)
}

func TestWhitespaceDescriptionFailsValidation(t *testing.T) {
	t.Parallel()
	form := *NewIncidentFormModel()
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyRight})
	form, _ = form.Update(tea.KeyMsg{Type: tea.KeyTab})
	form = typeString(t, form, "   ")

	form, cmd := form.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Nil(t, cmd)
	require.Contains(t, form.fieldErrors, "description")
	require.Len(t, form.fieldErrors, 1)
}

func TestEscapeCancelsForm(t *testing.T) {
	t.Parallel()
	form := *NewIncidentFormModel()
	_, cmd := form.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)

	_, ok := cmd().(model.FormCancelledMsg)
	require.True(t, ok)
}
