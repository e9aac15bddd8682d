// Package router sets up HTTP routes for the API server.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/config"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/exceptions"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/state"
	authFeature "github.com/slahq/sla/internal/ui/features/authsession"
	dashboardFeature "github.com/slahq/sla/internal/ui/features/dashboard"
	devFeature "github.com/slahq/sla/internal/ui/features/dev"
	exceptionsFeature "github.com/slahq/sla/internal/ui/features/exceptionlist"
	healthFeature "github.com/slahq/sla/internal/ui/features/health"
	workbenchFeature "github.com/slahq/sla/internal/ui/features/workbench"
	"github.com/slahq/sla/internal/ui/notifier"
)

// SetupRoutes configures all routes for the API server.
func SetupRoutes(
	router chi.Router,
	cfg *config.Config,
	store *state.SQLStore,
	sessions *auth.Sessions,
	runSvc *runs.Service,
	exSvc *exceptions.Service,
	notify *notifier.Notifier,
	logger *slog.Logger,
) {
	router.Use(sessions.Middleware)

	healthFeature.SetupRoutes(router, cfg, logger)
	authFeature.SetupRoutes(router, sessions, logger)
	dashboardFeature.SetupRoutes(router, store, logger)
	exceptionsFeature.SetupRoutes(router, exSvc, logger)

	// The cost-projection surface is always on; the forecast workbench
	// is behind its feature flag.
	workbenchFeature.SetupRoutes(router, "/api/projections", core.RunKindCostProjection, runSvc, notify, logger)
	if cfg.Flags.ForecastWorkbench {
		workbenchFeature.SetupRoutes(router, "/api/forecast", core.RunKindForecast, runSvc, notify, logger)
	}

	if cfg.IsDev() {
		devFeature.SetupRoutes(router, logger)
	}

	// Exported CSV artifacts. Reads everywhere else are owner-scoped,
	// so the file server at least requires an authenticated session.
	if cfg.Server.ArtifactsDir != "" {
		fs := http.StripPrefix("/artifacts/", http.FileServer(http.Dir(cfg.Server.ArtifactsDir)))
		router.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Get("/artifacts/*", fs.ServeHTTP)
		})
	}
}
