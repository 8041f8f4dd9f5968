package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
// Every error response from the API has the same shape:
//
//	{"message": "post not found with id 7"}
//
// The frontend displays `message` verbatim, so this is the one place that
// decides what clients see — and the one place that makes sure an internal
// failure never leaks SQL, file paths or driver detail.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/portfolio-backend/internal/apperror"
)

// ErrorResponse is the standard error body returned by all API endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends a JSON response with the given status code.
//
// Headers and status MUST be set before the body: once Encode calls
// w.Write, the headers are on the wire and later changes are silently
// dropped.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status and sends it.
//
// The service layer returns apperror values (ErrValidation, ErrNotFound,
// ErrUnauthorized) with human-readable messages; this function is the only
// place that knows which HTTP status each one becomes. Anything that isn't a
// typed AppError is an unexpected storage/internal failure: it gets logged
// server-side and surfaced as a generic 500 "DB error", never the raw error
// string.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		}

		writeJSON(w, status, ErrorResponse{Message: appErr.Message})
		return
	}

	slog.Error("internal error", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "DB error"})
}
