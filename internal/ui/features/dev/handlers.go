// Package dev holds development-only endpoints. None of these routes
// are mounted outside development mode.
package dev

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// echoDelay imitates a slow upstream so loading states are visible
// during local development.
const echoDelay = 150 * time.Millisecond

// Handlers provides development-only endpoints.
type Handlers struct {
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(logger *slog.Logger) *Handlers {
	return &Handlers{logger: logger.With("component", "dev")}
}

// Echo waits a fixed delay and returns the request body unchanged.
func (h *Handlers) Echo(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	select {
	case <-time.After(echoDelay):
	case <-r.Context().Done():
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
