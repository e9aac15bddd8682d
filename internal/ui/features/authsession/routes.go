package authsession

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/auth"
)

// SetupRoutes registers the session endpoints.
func SetupRoutes(router chi.Router, sessions *auth.Sessions, logger *slog.Logger) {
	handlers := NewHandlers(sessions, logger)

	router.Post("/api/auth/session", handlers.Establish)
	router.Delete("/api/auth/session", handlers.Clear)
}
