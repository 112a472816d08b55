package httpapi

import (
	"encoding/json"
	"net/http"

	"observerkit/internal/playground"
	"observerkit/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case playground.IsUnknownSource(err), playground.IsUnsupportedEvent(err):
		return http.StatusNotFound
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// rejectReason names the metric reason for a failed event request.
func rejectReason(err error) string {
	switch {
	case playground.IsUnknownSource(err):
		return "unknown_source"
	case playground.IsUnsupportedEvent(err):
		return "unsupported_event"
	}
	return "internal"
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}
