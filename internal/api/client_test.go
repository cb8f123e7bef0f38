package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"safetydesk/internal/api"
	"safetydesk/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, 5*time.Second, nil)
}

func TestCheckHealth(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Health{Status: model.HealthOK, DB: model.DBUp})
	})

	health, err := client.CheckHealth(context.Background())
	require.NoError(t, err)
	require.Equal(t, model.HealthOK, health.Status)
	require.Equal(t, model.DBUp, health.DB)
}

func TestListIncidentsExcludesArchivedByDefault(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/incidents", r.URL.Path)
		require.Empty(t, r.URL.Query().Get("include_archived"))
		_ = json.NewEncoder(w).Encode([]model.Incident{
			{ID: 1, Location: "Scrap Yard", Severity: model.SeverityHigh, Status: model.StatusOpen},
		})
	})

	incidents, err := client.ListIncidents(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, incidents, 1)
	require.Equal(t, int64(1), incidents[0].ID)
}

func TestListIncidentsIncludeArchived(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "true", r.URL.Query().Get("include_archived"))
		_ = json.NewEncoder(w).Encode([]model.Incident{})
	})

	_, err := client.ListIncidents(context.Background(), true)
	require.NoError(t, err)
}

func TestCreateIncident(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft model.NewIncident
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		require.Equal(t, "Rolling Mill", draft.Location)
		require.Equal(t, "Forklift tipped", draft.Description)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(model.Incident{
			ID:          7,
			Location:    draft.Location,
			Category:    draft.Category,
			Severity:    draft.Severity,
			Description: draft.Description,
			Status:      model.StatusOpen,
		})
	})

	created, err := client.CreateIncident(context.Background(), model.NewIncident{
		Location:    "Rolling Mill",
		Category:    "Mechanical",
		Severity:    model.SeverityHigh,
		Description: "Forklift tipped",
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), created.ID)
	require.Equal(t, model.StatusOpen, created.Status)
}

func TestPatchIncidentSendsOnlyStatus(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/incidents/3", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, map[string]any{"status": "Resolved"}, body)

		_ = json.NewEncoder(w).Encode(model.Incident{ID: 3, Status: model.StatusResolved})
	})

	status := model.StatusResolved
	updated, err := client.PatchIncident(context.Background(), 3, model.IncidentPatch{Status: &status})
	require.NoError(t, err)
	require.Equal(t, model.StatusResolved, updated.Status)
}

func TestArchiveIncidentDecodesBody(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/incidents/9", r.URL.Path)
		_ = json.NewEncoder(w).Encode(model.Incident{ID: 9, IsArchived: true})
	})

	archived, err := client.ArchiveIncident(context.Background(), 9)
	require.NoError(t, err)
	require.True(t, archived.IsArchived)
}

func TestNetworkFailureNamesBaseURL(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close() // connection refused from here on

	client := api.NewClient(baseURL, time.Second, nil)
	_, err := client.ListIncidents(context.Background(), false)
	require.Error(t, err)

	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrNetwork, apiErr.Kind)
	require.Contains(t, apiErr.Message, baseURL)
	require.Zero(t, apiErr.Status)
}

func TestServerErrorIsGeneric(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "stack trace: everything exploded", http.StatusServiceUnavailable)
	})

	_, err := client.CheckHealth(context.Background())
	require.Error(t, err)

	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrServer, apiErr.Kind)
	require.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	require.NotContains(t, apiErr.Message, "exploded")
	require.Contains(t, apiErr.Message, "try again")
}

func TestClientErrorUsesDetailField(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"bad severity"}`))
	})

	_, err := client.CreateIncident(context.Background(), model.NewIncident{})
	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrClient, apiErr.Kind)
	require.Equal(t, "bad severity", apiErr.Message)
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
}

func TestClientErrorPrefersErrorMessageField(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"location is required"},"detail":"ignored"}`))
	})

	_, err := client.CreateIncident(context.Background(), model.NewIncident{})
	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrClient, apiErr.Kind)
	require.Equal(t, "location is required", apiErr.Message)
}

func TestClientErrorFallsBackToRawBody(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("plain refusal"))
	})

	_, err := client.CreateIncident(context.Background(), model.NewIncident{})
	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrClient, apiErr.Kind)
	require.Equal(t, "plain refusal", apiErr.Message)
}

func TestClientErrorFallsBackToStatusLine(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ArchiveIncident(context.Background(), 404)
	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrClient, apiErr.Kind)
	require.Contains(t, apiErr.Message, "404")
}

func TestMalformedSuccessBodyIsUnknown(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := client.ListIncidents(context.Background(), false)
	apiErr := api.AsAPIError(err, "fallback")
	require.Equal(t, api.ErrUnknown, apiErr.Kind)
}

func TestAsAPIErrorWrapsForeignErrors(t *testing.T) {
	t.Parallel()
	apiErr := api.AsAPIError(context.Canceled, "Failed to load data")
	require.Equal(t, api.ErrUnknown, apiErr.Kind)
	require.Equal(t, "Failed to load data", apiErr.Message)
}
