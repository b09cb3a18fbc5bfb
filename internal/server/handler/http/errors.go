// Package http provides HTTP handlers and routing for the task tracker API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidationError(w http.ResponseWriter, details fieldErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Validation failed",
		"details": details,
	})
}

// writeServiceError maps domain errors to status codes. Anything
// unrecognized becomes a generic 500; the detail is logged server-side
// and never echoed to the client.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, models.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, models.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username already taken")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
