package dev

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the development-only endpoints.
func SetupRoutes(router chi.Router, logger *slog.Logger) {
	handlers := NewHandlers(logger)

	router.Post("/api/dev/echo", handlers.Echo)
}
