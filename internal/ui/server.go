// Package ui runs the SLA HTTP API server.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/config"
	"github.com/slahq/sla/internal/exceptions"
	"github.com/slahq/sla/internal/export"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/state"
	"github.com/slahq/sla/internal/ui/notifier"
	"github.com/slahq/sla/internal/ui/router"
)

// Server is the main API server.
type Server struct {
	cfg      *config.Config
	store    *state.SQLStore
	sessions *auth.Sessions
	notifier *notifier.Notifier
	runs     *runs.Service
	exSvc    *exceptions.Service
	worker   *runs.Worker
	logger   *slog.Logger
}

// NewServer wires the services around an opened store.
func NewServer(cfg *config.Config, store *state.SQLStore, logger *slog.Logger) (*Server, error) {
	artifacts, err := export.NewWriter(cfg.Server.ArtifactsDir)
	if err != nil {
		return nil, fmt.Errorf("artifacts dir: %w", err)
	}

	notify := notifier.New()
	runSvc := runs.NewService(store, notify, artifacts, logger)

	var worker *runs.Worker
	if cfg.Worker.Enabled {
		worker = runs.NewWorker(store, notify, logger, cfg.Worker.PollInterval, cfg.Worker.MaxBackoff)
	}

	return &Server{
		cfg:      cfg,
		store:    store,
		sessions: auth.New(cfg.Server.SessionSecret),
		notifier: notify,
		runs:     runSvc,
		exSvc:    exceptions.NewService(store, logger),
		worker:   worker,
		logger:   logger.With("component", "server"),
	}, nil
}

// Serve starts the API server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.cfg.Server.Port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, s.cfg, s.store, s.sessions, s.runs, s.exSvc, s.notifier, s.logger)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.worker != nil {
		eg.Go(func() error {
			return s.worker.Run(egctx)
		})
	}

	// In development the config file is watched so flag and worker
	// tweaks announce themselves; a restart is still needed to apply
	// them to already-wired routes.
	if s.cfg.IsDev() {
		eg.Go(func() error {
			return config.Watch(egctx, s.cfg.Dir, s.logger, func(cfg *config.Config) {
				s.logger.Info("configuration changed, restart to apply",
					"env", cfg.Env,
					"worker_enabled", cfg.Worker.Enabled)
			})
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
