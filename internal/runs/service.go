// Package runs implements the run lifecycle shared by the forecast
// and cost-projection workbenches: queueing a recompute, reporting
// status, publishing succeeded results, and exporting projections.
package runs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/slahq/sla/internal/core"
	"github.com/slahq/sla/internal/export"
	"github.com/slahq/sla/internal/ui/notifier"
)

// Service wraps the store with the lifecycle rules every caller must
// go through.
type Service struct {
	store     core.Store
	notifier  *notifier.Notifier
	artifacts *export.Writer
	logger    *slog.Logger
}

// NewService creates a run lifecycle service.
func NewService(store core.Store, notify *notifier.Notifier, artifacts *export.Writer, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		notifier:  notify,
		artifacts: artifacts,
		logger:    logger.With("component", "runs"),
	}
}

// Recompute queues a new run for the caller. A declared owner that
// differs from the authenticated caller is rejected before any row is
// created.
func (s *Service) Recompute(ctx context.Context, callerID string, kind core.RunKind, sc core.Scope, declaredOwner string) (*core.Run, error) {
	if callerID == "" {
		return nil, core.ErrUnauthenticated
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown run kind %q: %w", kind, core.ErrValidation)
	}
	if err := validateScope(sc); err != nil {
		return nil, err
	}
	if declaredOwner != "" && declaredOwner != callerID {
		return nil, fmt.Errorf("scope owner %q does not match caller: %w", declaredOwner, core.ErrOwnerMismatch)
	}

	run := &core.Run{
		OwnerID: callerID,
		Kind:    kind,
		Scope:   sc,
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	s.logger.Info("run queued",
		slog.String("id", run.ID),
		slog.String("kind", string(kind)),
		slog.String("owner", callerID))
	s.notifier.Broadcast(run.ID)

	return run, nil
}

// Status reports the caller's run. Runs owned by other users report
// not found.
func (s *Service) Status(ctx context.Context, callerID, id string) (*core.Run, error) {
	if callerID == "" {
		return nil, core.ErrUnauthenticated
	}
	return s.store.GetRun(ctx, callerID, id)
}

// Publish transitions a succeeded run to published and returns the
// publish timestamp. Re-publishing is rejected, not duplicated.
func (s *Service) Publish(ctx context.Context, callerID, id string) (time.Time, error) {
	if callerID == "" {
		return time.Time{}, core.ErrUnauthenticated
	}

	publishedAt, err := s.store.PublishRun(ctx, callerID, id)
	if err != nil {
		return time.Time{}, err
	}

	s.logger.Info("run published", slog.String("id", id), slog.String("owner", callerID))
	s.notifier.Broadcast(id)

	return publishedAt, nil
}

// Export writes the latest finished results for the scope to a CSV
// artifact and returns its URL path.
func (s *Service) Export(ctx context.Context, callerID string, kind core.RunKind, sc core.Scope) (string, error) {
	if callerID == "" {
		return "", core.ErrUnauthenticated
	}
	if !kind.Valid() {
		return "", fmt.Errorf("unknown run kind %q: %w", kind, core.ErrValidation)
	}
	if err := validateScope(sc); err != nil {
		return "", err
	}

	run, err := s.store.LatestFinishedRun(ctx, callerID, kind, sc)
	if err != nil {
		return "", err
	}

	rows, err := s.store.GetProjectionRows(ctx, callerID, run.ID)
	if err != nil {
		return "", err
	}

	url, err := s.artifacts.WriteProjections(run, rows)
	if err != nil {
		return "", err
	}

	s.logger.Info("projections exported",
		slog.String("run", run.ID),
		slog.String("url", url),
		slog.Int("rows", len(rows)))

	return url, nil
}

func validateScope(sc core.Scope) error {
	if n, err := strconv.Atoi(sc.Period); err != nil || n <= 0 {
		return fmt.Errorf("invalid period %q: %w", sc.Period, core.ErrValidation)
	}
	if sc.Confidence < 0 || sc.Confidence > 100 {
		return fmt.Errorf("invalid confidence %d: %w", sc.Confidence, core.ErrValidation)
	}
	if sc.Category == "" || sc.Supplier == "" {
		return fmt.Errorf("category and supplier are required: %w", core.ErrValidation)
	}
	return nil
}
