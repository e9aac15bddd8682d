package health

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/config"
)

// SetupRoutes registers the health endpoint.
func SetupRoutes(router chi.Router, cfg *config.Config, logger *slog.Logger) {
	handlers := NewHandlers(cfg, logger)

	router.Get("/_health", handlers.Health)
}
