package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/layout"
)

// SetupRoutes registers the dashboard layout endpoints.
func SetupRoutes(router chi.Router, storage layout.Storage, logger *slog.Logger) {
	handlers := NewHandlers(storage, logger)

	router.Get("/api/dashboard/layout", handlers.GetLayout)
	router.Put("/api/dashboard/layout", handlers.PutLayout)
}
