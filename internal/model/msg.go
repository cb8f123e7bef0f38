package model

// Bubble Tea message types

// HealthLoadedMsg is sent when the health check completes.
type HealthLoadedMsg struct {
	Health Health
}

// HealthCheckFailedMsg is sent when the health check fails.
type HealthCheckFailedMsg struct {
	Err error
}

// IncidentsLoadedMsg is sent when the incident list is loaded. Seq is the
// request sequence number the load was issued under; responses older than
// the newest issued request are discarded.
type IncidentsLoadedMsg struct {
	Seq       uint64
	Incidents []Incident
}

// IncidentsLoadFailedMsg is sent when the incident list load fails.
type IncidentsLoadFailedMsg struct {
	Seq uint64
	Err error
}

// IncidentCreatedMsg is sent when a new incident is accepted by the backend.
type IncidentCreatedMsg struct {
	Incident Incident
}

// CreateFailedMsg is sent when incident submission fails. The form draft
// is kept so the user does not lose input.
type CreateFailedMsg struct {
	Err error
}

// StatusChangedMsg is sent when a status patch is accepted.
type StatusChangedMsg struct {
	ID     int64
	Status string
}

// StatusChangeFailedMsg is sent when a status patch fails.
type StatusChangeFailedMsg struct {
	Err error
}

// IncidentArchivedMsg is sent when an incident is soft-deleted.
type IncidentArchivedMsg struct {
	ID int64
}

// ArchiveFailedMsg is sent when archiving fails.
type ArchiveFailedMsg struct {
	Err error
}

// FormCancelledMsg is sent when the report form is cancelled.
type FormCancelledMsg struct{}

// Screen represents different app screens.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenForm
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNav Mode = iota
	ModeInsert
)
