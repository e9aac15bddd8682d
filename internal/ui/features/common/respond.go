// Package common provides shared response helpers for API features.
package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/slahq/sla/internal/core"
)

// ErrorBody is the uniform error envelope every API endpoint returns.
type ErrorBody struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto its HTTP status and writes the
// error envelope. Unknown errors become 500 and are logged; their
// message is not leaked to the client.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		status, msg = http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, core.ErrOwnerMismatch):
		status, msg = http.StatusForbidden, err.Error()
	case errors.Is(err, core.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, core.ErrInvalidState):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, core.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrUnavailable):
		status, msg = http.StatusServiceUnavailable, "service unavailable"
	default:
		logger.Error("unhandled error", slog.String("error", err.Error()))
	}

	WriteJSON(w, status, ErrorBody{OK: false, Error: msg})
}

// DecodeJSON parses the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", core.ErrValidation)
	}
	return nil
}
