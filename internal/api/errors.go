package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrorKind categorizes a failed API call.
type ErrorKind string

const (
	// ErrNetwork means the request never reached the server.
	ErrNetwork ErrorKind = "network"
	// ErrServer means the server answered with a 5xx status.
	ErrServer ErrorKind = "server"
	// ErrClient means the server rejected the request with a 4xx status.
	ErrClient ErrorKind = "client"
	// ErrUnknown covers everything else, including malformed responses.
	ErrUnknown ErrorKind = "unknown"
)

// APIError is the only error type the client surfaces. Status is the
// HTTP status code, or 0 when no response was received.
type APIError struct {
	Kind    ErrorKind
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody is the structured error shape the backend uses when it has
// something to say: either {"error": {"message": ...}} or {"detail": ...}.
type errorBody struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail string `json:"detail"`
}

// networkError classifies a transport-level failure. The message names
// the configured base URL so the operator can verify reachability.
func networkError(baseURL string) *APIError {
	return &APIError{
		Kind:    ErrNetwork,
		Message: fmt.Sprintf("Backend unreachable. Ensure the API is running at %s.", baseURL),
		Status:  0,
	}
}

// classifyResponse turns a non-2xx HTTP response into an APIError.
// 5xx bodies are not guaranteed structured, so they are never echoed.
func classifyResponse(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode >= 500 {
		return &APIError{
			Kind:    ErrServer,
			Message: "Server error. Please try again shortly.",
			Status:  resp.StatusCode,
		}
	}

	message := clientMessage(body)
	if message == "" {
		message = resp.Status
	}
	return &APIError{
		Kind:    ErrClient,
		Message: message,
		Status:  resp.StatusCode,
	}
}

// clientMessage extracts a human-readable message from a 4xx body, in
// priority order: error.message, detail, raw body text.
func clientMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != nil && parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Detail != "" {
			return parsed.Detail
		}
	}
	return strings.TrimSpace(string(body))
}

// unknownError classifies a failure with no usable evidence, such as a
// JSON decode failure on a 2xx response.
func unknownError(fallback string) *APIError {
	return &APIError{
		Kind:    ErrUnknown,
		Message: fallback,
		Status:  0,
	}
}

// AsAPIError unwraps err as an *APIError, or wraps it as unknown with
// the given fallback message. Callers use it at the controller boundary.
func AsAPIError(err error, fallback string) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return &APIError{Kind: ErrUnknown, Message: fallback}
}
