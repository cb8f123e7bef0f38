package ui

import (
	"fmt"
	"strings"

	"safetydesk/internal/triage"
)

// renderFilterSummary renders the active filters and sort stack for the
// dashboard status line. Returns "" when nothing is active.
func renderFilterSummary(f triage.FilterState) string {
	var parts []string

	if f.Location != "" {
		parts = append(parts, fmt.Sprintf("location=%q", f.Location))
	}
	if f.Category != "" {
		parts = append(parts, fmt.Sprintf("category=%q", f.Category))
	}
	if f.Severity != "" {
		parts = append(parts, fmt.Sprintf("severity=%q", f.Severity))
	}
	if f.Status != "" {
		parts = append(parts, fmt.Sprintf("status=%q", f.Status))
	}

	if len(f.Sorts) > 0 {
		// Primary key first, since that reads naturally.
		keys := make([]string, 0, len(f.Sorts))
		for i := len(f.Sorts) - 1; i >= 0; i-- {
			d := f.Sorts[i]
			dir := "asc"
			if d.Desc {
				dir = "desc"
			}
			keys = append(keys, fmt.Sprintf("%s %s", d.Key, dir))
		}
		parts = append(parts, "sort "+strings.Join(keys, " → "))
	}

	return strings.Join(parts, "  ·  ")
}

// setFilter applies one equality filter on the filter state by field name.
func setFilter(f *triage.FilterState, field, value string) {
	switch field {
	case "location":
		f.Location = value
	case "category":
		f.Category = value
	case "severity":
		f.Severity = value
	case "status":
		f.Status = value
	}
}

// clearFilter clears one equality filter by field name. It reports
// whether a filter was actually cleared.
func clearFilter(f *triage.FilterState, field string) bool {
	switch field {
	case "location":
		if f.Location != "" {
			f.Location = ""
			return true
		}
	case "category":
		if f.Category != "" {
			f.Category = ""
			return true
		}
	case "severity":
		if f.Severity != "" {
			f.Severity = ""
			return true
		}
	case "status":
		if f.Status != "" {
			f.Status = ""
			return true
		}
	}
	return false
}
