package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes v as the response body. Everything under /api responds
// this way, including error and gate-notice bodies.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// errResponse carries the user-facing message for a failed request, worded so
// the SPA can show it as a notice (empty title, duplicate title, locked gate).
type errResponse struct {
	Error string `json:"error" validate:"required"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}
