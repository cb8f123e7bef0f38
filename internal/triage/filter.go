package triage

import (
	"sort"
	"strings"

	"safetydesk/internal/model"
	"safetydesk/internal/util"
)

// SortKey identifies a sortable incident field.
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortSeverity SortKey = "severity"
	SortStatus   SortKey = "status"
	SortLocation SortKey = "location"
)

// SortDirective is one entry in the sort stack.
type SortDirective struct {
	Key  SortKey
	Desc bool
}

// FilterState holds the dashboard's equality filters and sort stack.
// Sorts is kept in application order: the last entry is the primary sort
// key, with ties broken by earlier entries in reverse application order.
type FilterState struct {
	Location string
	Category string
	Severity string
	Status   string

	Sorts []SortDirective
}

// PushSort makes key the primary sort key. Re-pushing an active key moves
// it to the top of the stack and replaces its direction.
func (f *FilterState) PushSort(key SortKey, desc bool) {
	kept := f.Sorts[:0]
	for _, d := range f.Sorts {
		if d.Key != key {
			kept = append(kept, d)
		}
	}
	f.Sorts = append(kept, SortDirective{Key: key, Desc: desc})
}

// PopSort removes the primary sort directive.
func (f *FilterState) PopSort() {
	if len(f.Sorts) > 0 {
		f.Sorts = f.Sorts[:len(f.Sorts)-1]
	}
}

// ClearSorts removes every sort directive, restoring server order.
func (f *FilterState) ClearSorts() {
	f.Sorts = nil
}

// Reset clears all filters and the sort stack.
func (f *FilterState) Reset() {
	*f = FilterState{}
}

// HasFilters reports whether any equality filter is set.
func (f FilterState) HasFilters() bool {
	return f.Location != "" || f.Category != "" || f.Severity != "" || f.Status != ""
}

// ComputeVisible returns the ordered subset of incidents matching every
// set filter, sorted by the sort stack. The input is never mutated; an
// empty sort stack preserves server order. The sort is stable so
// equal-key rows keep their relative order across recomputations.
func ComputeVisible(all []model.Incident, f FilterState) []model.Incident {
	visible := make([]model.Incident, 0, len(all))
	for _, inc := range all {
		if matches(inc, f) {
			visible = append(visible, inc)
		}
	}

	if len(f.Sorts) == 0 {
		return visible
	}

	sort.SliceStable(visible, func(i, j int) bool {
		for k := len(f.Sorts) - 1; k >= 0; k-- {
			d := f.Sorts[k]
			c := compareBy(visible[i], visible[j], d.Key)
			if d.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return visible
}

func matches(inc model.Incident, f FilterState) bool {
	if f.Location != "" && inc.Location != f.Location {
		return false
	}
	if f.Category != "" && inc.Category != f.Category {
		return false
	}
	if f.Severity != "" && inc.Severity != f.Severity {
		return false
	}
	if f.Status != "" && inc.Status != f.Status {
		return false
	}
	return true
}

func compareBy(a, b model.Incident, key SortKey) int {
	switch key {
	case SortCreated:
		ta, okA := util.ParseTimestamp(a.CreatedAt)
		tb, okB := util.ParseTimestamp(b.CreatedAt)
		if okA && okB {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
		return strings.Compare(a.CreatedAt, b.CreatedAt)
	case SortSeverity:
		return intCompare(model.SeverityRank(a.Severity), model.SeverityRank(b.Severity))
	case SortStatus:
		return intCompare(model.StatusRank(a.Status), model.StatusRank(b.Status))
	case SortLocation:
		return strings.Compare(a.Location, b.Location)
	default:
		return 0
	}
}

func intCompare(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
