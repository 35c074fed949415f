package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"tunegen/internal/apperror"
)

// ErrorResponse is the error shape every endpoint returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Limit   int    `json:"limit,omitempty"`
	Used    int    `json:"used,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		// Headers are already sent; an encode failure here can only be
		// dropped.
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError maps an apperror kind to its HTTP status. Unknown errors
// become a generic 500 so internals never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	status := http.StatusInternalServerError
	kind := "internal_error"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperror.ErrValidation):
		status, kind = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrUnauthenticated):
		status, kind = http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, apperror.ErrForbidden):
		status, kind = http.StatusForbidden, "forbidden"
	case errors.Is(err, apperror.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrUpstream):
		status, kind = http.StatusInternalServerError, "upstream_error"
	}

	if errors.As(err, &appErr) {
		message = appErr.Message
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}

	writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}
