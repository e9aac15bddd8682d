package workbench

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/ui/notifier"
)

// SetupRoutes mounts the run lifecycle endpoints for one run kind under
// the given prefix, e.g. /api/forecast or /api/projections.
func SetupRoutes(router chi.Router, prefix string, kind core.RunKind, service *runs.Service, notify *notifier.Notifier, logger *slog.Logger) {
	handlers := NewHandlers(kind, service, notify, logger)

	router.Route(prefix, func(r chi.Router) {
		r.Post("/recompute", handlers.Recompute)
		r.Get("/export", handlers.Export)
		r.Get("/runs/{id}", handlers.Status)
		r.Post("/runs/{id}/publish", handlers.Publish)
		r.Get("/runs/{id}/events", handlers.Events)
	})
}
