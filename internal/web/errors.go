package web

// errors.go provides unified error response handling for the web layer.
// Technical errors are logged with the request ID for correlation; clients
// receive a sanitized JSON body.

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"caseboard/internal/client"
	"caseboard/internal/logging"
)

// ErrorResponse is the JSON structure for API error responses.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Action string              `json:"action,omitempty"`
	Code   string              `json:"code,omitempty"`
	Fields []client.FieldError `json:"fields,omitempty"`
}

// respondError logs the technical error and returns a JSON error body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
	)
	respondErrorJSON(w, ErrorResponse{Error: err.Error()}, statusCode)
}

func respondErrorJSON(w http.ResponseWriter, resp ErrorResponse, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}

// respondJSON encodes v as JSON. Encoding errors are logged since headers
// are already sent.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
