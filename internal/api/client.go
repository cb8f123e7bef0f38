package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"safetydesk/internal/model"

	"go.uber.org/zap"
)

// DefaultBaseURL is where the backend listens unless configured otherwise.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client wraps the incident backend's REST API. It keeps no cache; every
// call is a single request/response round trip with no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a backend API client.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CheckHealth fetches the backend health report.
func (c *Client) CheckHealth(ctx context.Context) (model.Health, error) {
	var health model.Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &health)
	if err != nil {
		return model.Health{}, err
	}
	return health, nil
}

// ListIncidents fetches incidents in server order. Archived incidents are
// excluded unless includeArchived is set.
func (c *Client) ListIncidents(ctx context.Context, includeArchived bool) ([]model.Incident, error) {
	path := "/incidents"
	if includeArchived {
		params := url.Values{}
		params.Set("include_archived", "true")
		path += "?" + params.Encode()
	}

	var incidents []model.Incident
	if err := c.do(ctx, http.MethodGet, path, nil, &incidents); err != nil {
		return nil, err
	}
	return incidents, nil
}

// CreateIncident submits a new incident report.
func (c *Client) CreateIncident(ctx context.Context, draft model.NewIncident) (model.Incident, error) {
	var created model.Incident
	if err := c.do(ctx, http.MethodPost, "/incidents", draft, &created); err != nil {
		return model.Incident{}, err
	}
	return created, nil
}

// PatchIncident applies a partial update to one incident.
func (c *Client) PatchIncident(ctx context.Context, id int64, patch model.IncidentPatch) (model.Incident, error) {
	var updated model.Incident
	path := fmt.Sprintf("/incidents/%d", id)
	if err := c.do(ctx, http.MethodPatch, path, patch, &updated); err != nil {
		return model.Incident{}, err
	}
	return updated, nil
}

// ArchiveIncident soft-deletes an incident. The backend keeps the record
// and excludes it from default listings.
func (c *Client) ArchiveIncident(ctx context.Context, id int64) (model.Incident, error) {
	var archived model.Incident
	path := fmt.Sprintf("/incidents/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &archived); err != nil {
		return model.Incident{}, err
	}
	return archived, nil
}

// do executes one round trip and decodes the JSON response into out.
// Every failure path returns an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.log.Error("request encode failed", zap.String("path", path), zap.Error(err))
			return unknownError("Failed to encode request")
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		c.log.Error("request creation failed", zap.String("path", path), zap.Error(err))
		return unknownError("Failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return networkError(c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := classifyResponse(resp)
		c.log.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", string(apiErr.Kind)))
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("response decode failed", zap.String("path", path), zap.Error(err))
		return unknownError("Unexpected response from backend")
	}
	return nil
}
