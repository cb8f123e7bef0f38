package triage_test

import (
	"testing"

	"safetydesk/internal/model"
	"safetydesk/internal/triage"

	"github.com/stretchr/testify/require"
)

func sampleIncidents() []model.Incident {
	return []model.Incident{
		{ID: 1, Location: "Rolling Mill", Category: "Mechanical", Severity: model.SeverityHigh, Status: model.StatusOpen, CreatedAt: "2026-03-01T08:00:00"},
		{ID: 2, Location: "Blast Furnace", Category: "Chemical", Severity: model.SeverityLow, Status: model.StatusResolved, CreatedAt: "2026-03-02T08:00:00"},
		{ID: 3, Location: "Rolling Mill", Category: "Electrical", Severity: model.SeverityMedium, Status: model.StatusInvestigating, CreatedAt: "2026-03-03T08:00:00"},
		{ID: 4, Location: "Scrap Yard", Category: "Mechanical", Severity: model.SeverityHigh, Status: model.StatusInvestigating, CreatedAt: "2026-03-04T08:00:00"},
		{ID: 5, Location: "Shipping Dock", Category: "Slip/Trip/Fall", Severity: model.SeverityLow, Status: model.StatusOpen, CreatedAt: "2026-03-05T08:00:00"},
	}
}

func ids(incidents []model.Incident) []int64 {
	out := make([]int64, len(incidents))
	for i, inc := range incidents {
		out[i] = inc.ID
	}
	return out
}

func TestNoFiltersPreservesServerOrder(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()
	visible := triage.ComputeVisible(all, triage.FilterState{})
	require.Equal(t, []int64{1, 2, 3, 4, 5}, ids(visible))
}

func TestFiltersAreConjunctive(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	f := triage.FilterState{Location: "Rolling Mill"}
	require.Equal(t, []int64{1, 3}, ids(triage.ComputeVisible(all, f)))

	f.Severity = model.SeverityHigh
	require.Equal(t, []int64{1}, ids(triage.ComputeVisible(all, f)))

	f.Status = model.StatusResolved
	require.Empty(t, triage.ComputeVisible(all, f))
}

func TestFilterEqualityIsExact(t *testing.T) {
	t.Parallel()
	all := []model.Incident{
		{ID: 1, Severity: "High"},
		{ID: 2, Severity: "high"},
	}
	visible := triage.ComputeVisible(all, triage.FilterState{Severity: "High"})
	require.Equal(t, []int64{1}, ids(visible))
}

func TestEveryVisibleRowMatchesAllPredicates(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()
	f := triage.FilterState{Category: "Mechanical", Status: model.StatusInvestigating}
	for _, inc := range triage.ComputeVisible(all, f) {
		require.Equal(t, "Mechanical", inc.Category)
		require.Equal(t, model.StatusInvestigating, inc.Status)
	}
}

func TestSortBySeverity(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	var f triage.FilterState
	f.PushSort(triage.SortSeverity, false)
	require.Equal(t, []int64{2, 5, 3, 1, 4}, ids(triage.ComputeVisible(all, f)))

	f.PushSort(triage.SortSeverity, true)
	require.Equal(t, []int64{1, 4, 3, 2, 5}, ids(triage.ComputeVisible(all, f)))
}

func TestSortStackLastPushedIsPrimary(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	// severity first, then status: status is primary, severity breaks ties.
	var f triage.FilterState
	f.PushSort(triage.SortSeverity, false)
	f.PushSort(triage.SortStatus, false)

	visible := triage.ComputeVisible(all, f)
	require.Equal(t, []int64{5, 1, 3, 4, 2}, ids(visible))

	// Pushed the other way round, severity is primary.
	var g triage.FilterState
	g.PushSort(triage.SortStatus, false)
	g.PushSort(triage.SortSeverity, false)

	visible = triage.ComputeVisible(all, g)
	require.Equal(t, []int64{5, 2, 3, 1, 4}, ids(visible))
}

func TestRepushMovesKeyToTop(t *testing.T) {
	t.Parallel()
	var f triage.FilterState
	f.PushSort(triage.SortSeverity, false)
	f.PushSort(triage.SortStatus, false)
	f.PushSort(triage.SortSeverity, true)

	require.Len(t, f.Sorts, 2)
	require.Equal(t, triage.SortDirective{Key: triage.SortSeverity, Desc: true}, f.Sorts[1])
	require.Equal(t, triage.SortDirective{Key: triage.SortStatus, Desc: false}, f.Sorts[0])
}

func TestSortByCreatedTimestamp(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	var f triage.FilterState
	f.PushSort(triage.SortCreated, true)
	require.Equal(t, []int64{5, 4, 3, 2, 1}, ids(triage.ComputeVisible(all, f)))
}

func TestSortByLocationLexicographic(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	var f triage.FilterState
	f.PushSort(triage.SortLocation, false)
	require.Equal(t, []int64{2, 1, 3, 4, 5}, ids(triage.ComputeVisible(all, f)))
}

func TestComputeVisibleIsIdempotentAndStable(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	var f triage.FilterState
	f.PushSort(triage.SortSeverity, true)

	first := triage.ComputeVisible(all, f)
	second := triage.ComputeVisible(all, f)
	require.Equal(t, first, second)

	// Equal-severity rows keep server order: 1 before 4, 2 before 5.
	require.Equal(t, []int64{1, 4, 3, 2, 5}, ids(first))
}

func TestComputeVisibleDoesNotMutateInput(t *testing.T) {
	t.Parallel()
	all := sampleIncidents()

	var f triage.FilterState
	f.PushSort(triage.SortCreated, true)
	_ = triage.ComputeVisible(all, f)

	require.Equal(t, []int64{1, 2, 3, 4, 5}, ids(all))
}

func TestPopAndClearSorts(t *testing.T) {
	t.Parallel()
	var f triage.FilterState
	f.PushSort(triage.SortSeverity, false)
	f.PushSort(triage.SortStatus, false)

	f.PopSort()
	require.Equal(t, []triage.SortDirective{{Key: triage.SortSeverity}}, f.Sorts)

	f.ClearSorts()
	require.Empty(t, f.Sorts)

	f.PopSort() // no-op on empty stack
	require.Empty(t, f.Sorts)
}

func TestReset(t *testing.T) {
	t.Parallel()
	f := triage.FilterState{Location: "Scrap Yard", Status: model.StatusOpen}
	f.PushSort(triage.SortCreated, false)
	require.True(t, f.HasFilters())

	f.Reset()
	require.False(t, f.HasFilters())
	require.Empty(t, f.Sorts)
}
