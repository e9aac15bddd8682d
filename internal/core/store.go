package core

import (
	"context"
	"time"
)

// Store defines the persistence operations the SLA service needs.
type Store interface {
	Close() error
	Ping(ctx context.Context) error

	// Run operations. Reads are owner-scoped: a run owned by another
	// user is reported as ErrNotFound.
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, ownerID, id string) (*Run, error)
	ClaimQueuedRun(ctx context.Context) (*Run, error)
	FinishRun(ctx context.Context, id string, status RunStatus, metrics map[string]string, errMsg string) error
	PublishRun(ctx context.Context, ownerID, id string) (time.Time, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	LatestFinishedRun(ctx context.Context, ownerID string, kind RunKind, scope Scope) (*Run, error)

	// Projection rows belong to a run and are written once by the
	// worker.
	SaveProjectionRows(ctx context.Context, runID string, rows []ProjectionRow) error
	GetProjectionRows(ctx context.Context, ownerID, runID string) ([]ProjectionRow, error)

	// Exception operations.
	CreateException(ctx context.Context, ex *Exception) error
	ListOpenExceptions(ctx context.Context, ownerID string, scope *Scope) ([]*Exception, error)
	ResolveException(ctx context.Context, ownerID, id, note string) error

	// Layout blobs, one JSON document per owner and key.
	GetLayout(ctx context.Context, ownerID, key string) ([]byte, error)
	SetLayout(ctx context.Context, ownerID, key string, blob []byte) error
}
