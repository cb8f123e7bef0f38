package model

// Incident represents one reported safety event as returned by the backend.
type Incident struct {
	ID          int64  `json:"id"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Status      string `json:"status"`
	ReportedBy  string `json:"reported_by,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	IsArchived  bool   `json:"is_archived"`
	CreatedAt   string `json:"created_at"` // ISO 8601 or epoch seconds, server-formatted
	UpdatedAt   string `json:"updated_at,omitempty"`
	ResolvedAt  string `json:"resolved_at,omitempty"`
}

// NewIncident represents data for submitting a new incident report.
type NewIncident struct {
	Location    string `json:"location"`
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	ReportedBy  string `json:"reported_by,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// IncidentPatch represents a partial update. Only fields with non-nil
// values are sent; status is the only field the app changes today.
type IncidentPatch struct {
	Status *string `json:"status,omitempty"`
}

// Health represents the backend health report.
type Health struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

// Health status values. HealthChecking is client-side only, before the
// first health response arrives.
const (
	HealthChecking = "checking"
	HealthOK       = "ok"
	HealthDegraded = "degraded"

	DBUnknown = "unknown"
	DBUp      = "up"
	DBDown    = "down"
)

// Severity values, in escalation order.
const (
	SeverityLow    = "Low"
	SeverityMedium = "Medium"
	SeverityHigh   = "High"
)

// Status values, in lifecycle order.
const (
	StatusOpen          = "Open"
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
)

// Closed vocabularies for form selects and filters.
var (
	Locations  = []string{"Rolling Mill", "Blast Furnace", "Scrap Yard", "Shipping Dock"}
	Categories = []string{"Mechanical", "Electrical", "Chemical", "Slip/Trip/Fall"}
	Severities = []string{SeverityLow, SeverityMedium, SeverityHigh}
	Statuses   = []string{StatusOpen, StatusInvestigating, StatusResolved}
)

var severityRank = map[string]int{
	SeverityLow:    0,
	SeverityMedium: 1,
	SeverityHigh:   2,
}

var statusRank = map[string]int{
	StatusOpen:          0,
	StatusInvestigating: 1,
	StatusResolved:      2,
}

// SeverityRank returns the escalation rank of a severity value.
// Unknown values rank below Low so malformed rows sink to one end.
func SeverityRank(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return -1
}

// StatusRank returns the lifecycle rank of a status value.
func StatusRank(status string) int {
	if r, ok := statusRank[status]; ok {
		return r
	}
	return -1
}

// NextStatus returns the status after the given one in lifecycle order,
// wrapping from Resolved back to Open.
func NextStatus(status string) string {
	r, ok := statusRank[status]
	if !ok {
		return StatusOpen
	}
	return Statuses[(r+1)%len(Statuses)]
}
