package exceptionlist

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/exceptions"
)

// SetupRoutes registers the exception endpoints.
func SetupRoutes(router chi.Router, service *exceptions.Service, logger *slog.Logger) {
	handlers := NewHandlers(service, logger)

	router.Route("/api/exceptions", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/{id}/resolve", handlers.Resolve)
	})
}
