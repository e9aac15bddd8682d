// Package features provides shared test utilities for API feature tests.
package features

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slahq/sla/internal/auth"
	"github.com/slahq/sla/internal/config"
	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/export"
	"github.com/slahq/sla/internal/runs"
	"github.com/slahq/sla/internal/state"
	"github.com/slahq/sla/internal/testutil"
	"github.com/slahq/sla/internal/ui/notifier"
)

// TestFixture holds all dependencies needed for feature handler tests.
type TestFixture struct {
	Config    *config.Config
	Store     *state.SQLStore
	Sessions  *auth.Sessions
	Notifier  *notifier.Notifier
	Artifacts *export.Writer
	Runs      *runs.Service
	Worker    *runs.Worker
}

// SetupTestFixture creates a fixture backed by an in-memory SQLite
// store with migrations applied.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	logger := testutil.NewTestLogger(t)

	store, err := state.Open(state.DriverSQLite, ":memory:", logger)
	require.NoError(t, err)
	require.NoError(t, store.Migrate())
	t.Cleanup(func() { _ = store.Close() })

	artifactsDir := filepath.Join(t.TempDir(), "artifacts")
	artifacts, err := export.NewWriter(artifactsDir)
	require.NoError(t, err)

	notify := notifier.New()
	runSvc := runs.NewService(store, notify, artifacts, logger)
	worker := runs.NewWorker(store, notify, logger, 10*time.Millisecond, 50*time.Millisecond)

	cfg := &config.Config{
		Env: "development",
		Server: config.ServerConfig{
			Port:          0,
			SessionSecret: "test-secret",
			ArtifactsDir:  artifactsDir,
		},
		Database: config.DatabaseConfig{Driver: state.DriverSQLite, DSN: ":memory:"},
		Flags: config.Flags{
			ForecastWorkbench: true,
		},
	}

	return &TestFixture{
		Config:    cfg,
		Store:     store,
		Sessions:  auth.New(cfg.Server.SessionSecret),
		Notifier:  notify,
		Artifacts: artifacts,
		Runs:      runSvc,
		Worker:    worker,
	}
}

// AsUser returns a copy of the request with the caller identity already
// resolved, skipping the cookie round trip.
func AsUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.WithUser(r.Context(), userID))
}

// SeedRun inserts a queued run for the given owner.
func (f *TestFixture) SeedRun(t *testing.T, ownerID string, kind core.RunKind, sc core.Scope) *core.Run {
	t.Helper()

	run := &core.Run{OwnerID: ownerID, Kind: kind, Scope: sc}
	require.NoError(t, f.Store.CreateRun(t.Context(), run))
	return run
}
