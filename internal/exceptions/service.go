package exceptions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slahq/sla/internal/core"
)

// Service exposes the owner-scoped exception operations.
type Service struct {
	store  core.Store
	logger *slog.Logger
}

// NewService creates an exceptions service.
func NewService(store core.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With("component", "exceptions"),
	}
}

// List returns the caller's open exceptions, optionally narrowed by
// scope. A caller with none gets an empty list, not an error.
func (s *Service) List(ctx context.Context, callerID string, sc *core.Scope) ([]*core.Exception, error) {
	if callerID == "" {
		return nil, core.ErrUnauthenticated
	}
	return s.store.ListOpenExceptions(ctx, callerID, sc)
}

// Resolve marks the caller's exception resolved with an optional note.
// The type must match a known exception type; the transition is
// one-way.
func (s *Service) Resolve(ctx context.Context, callerID, id string, typ core.ExceptionType, note string) error {
	if callerID == "" {
		return core.ErrUnauthenticated
	}
	if !typ.Valid() {
		return fmt.Errorf("unknown exception type %q: %w", typ, core.ErrValidation)
	}

	if err := s.store.ResolveException(ctx, callerID, id, note); err != nil {
		return err
	}

	s.logger.Info("exception resolved",
		slog.String("id", id),
		slog.String("type", string(typ)),
		slog.String("owner", callerID))

	return nil
}
