// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// WriteError is deliberately the ONLY place in the repository that turns
// a failure into an HTTP response: it owns the mapping from failure kind
// to status code, the error body shape, and the log line. Handlers hand
// it a failure and stop — they never write error bodies themselves, so
// the failure surface of the whole API is enumerable in one switch below.
package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/users-api/internal/types"
)

// ErrorResponse is the body of every non-2xx response:
//
//	{ "message": "field name is required, field age must be at most 120" }
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// Parameters:
//
//	w      — the http.ResponseWriter provided to every handler
//	status — HTTP status code (e.g. http.StatusOK = 200)
//	data   — any Go value; will be JSON-encoded and written to the body
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	// Tell the client the body is JSON, not HTML or plain text.
	w.Header().Set("Content-Type", "application/json")

	// Write the HTTP status line (e.g. "HTTP/1.1 201 Created").
	// This must happen before any body bytes are written.
	w.WriteHeader(status)

	// json.NewEncoder(w) creates a JSON encoder that streams directly
	// into w, avoiding an intermediate buffer.
	return json.NewEncoder(w).Encode(data)
}

// statusOf maps a failure kind to its HTTP status code — the one place
// this mapping exists.
func statusOf(kind types.ErrorKind) int {
	switch kind {
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindConflict:
		return http.StatusConflict
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindUnexpected:
		return http.StatusInternalServerError
	default:
		// An unknown kind means somebody added a constant without
		// extending this switch.
		return http.StatusInternalServerError
	}
}

// WriteError renders any failure as the standard error response.
//
// Handlers may pass either a *types.Error they built themselves or a raw
// error straight from a collaborator. A raw error is treated as
// unexpected: the caller gets the generic notice, while the real message
// goes to the log — backend details (driver errors and the like) belong
// in logs, never in response bodies.
func WriteError(w http.ResponseWriter, err error) error {
	var appErr *types.Error
	if !errors.As(err, &appErr) {
		appErr = types.UnexpectedError("")
	}

	status := statusOf(appErr.Kind)

	// Client mistakes (4xx) are routine — log them at Warn so a prod
	// log at Info/Warn stays readable. Server-side failures are ours
	// and log at Error. err (not appErr) keeps the original detail.
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()))
	} else {
		slog.Warn("request failed",
			slog.Int("status", status),
			slog.String("error", err.Error()))
	}

	return WriteJSON(w, status, ErrorResponse{Message: appErr.Message})
}
