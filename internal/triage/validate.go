package triage

import (
	"strings"

	"safetydesk/internal/model"
)

// Validate checks a draft incident before submission. It returns a map
// of field name to error message; an empty map means the draft is
// submittable. reported_by and photo_url are always optional.
func Validate(draft model.NewIncident) map[string]string {
	errs := make(map[string]string)
	if draft.Location == "" {
		errs["location"] = "Location is required"
	}
	if draft.Category == "" {
		errs["category"] = "Category is required"
	}
	if draft.Severity == "" {
		errs["severity"] = "Severity is required"
	}
	if strings.TrimSpace(draft.Description) == "" {
		errs["description"] = "Description is required"
	}
	return errs
}
