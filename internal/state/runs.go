package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/slahq/sla/internal/core"
)

// generateID creates a new UUID.
func generateID() string {
	return uuid.New().String()
}

// CreateRun inserts a new run. ID, status, and created timestamp are
// assigned here; the caller provides owner, kind, and scope.
func (s *SQLStore) CreateRun(ctx context.Context, run *core.Run) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	run.ID = generateID()
	run.Status = core.RunStatusQueued
	run.CreatedAt = time.Now().UTC()

	s.logger.Debug("creating run",
		slog.String("id", run.ID),
		slog.String("owner", run.OwnerID),
		slog.String("kind", string(run.Kind)))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, owner_id, kind, period, category, supplier, confidence, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.OwnerID, string(run.Kind),
		run.Scope.Period, run.Scope.Category, run.Scope.Supplier, run.Scope.Confidence,
		string(run.Status), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	return nil
}

const runColumns = `id, owner_id, kind, period, category, supplier, confidence,
	status, metrics, error, created_at, started_at, completed_at, published_at`

// GetRun retrieves a run by id, scoped to its owner. A run owned by a
// different user is indistinguishable from a missing one.
func (s *SQLStore) GetRun(ctx context.Context, ownerID, id string) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return run, nil
}

// claimQuery builds the driver-specific claim statement. On Postgres a
// session that blocked on the claimed row's lock re-checks only the
// outer qualifiers after the winner commits, so the subquery must skip
// locked rows and the outer WHERE must re-assert the queued status.
// SQLite rejects FOR UPDATE and serializes writers, so it takes the
// plain form; the outer status guard holds for both.
func (s *SQLStore) claimQuery() string {
	sub := `SELECT id FROM runs WHERE status = 'queued' ORDER BY created_at LIMIT 1`
	if s.driver == DriverPostgres {
		sub += ` FOR UPDATE SKIP LOCKED`
	}
	return `UPDATE runs SET status = 'running', started_at = $1
	 WHERE id = (` + sub + `) AND status = 'queued'
	 RETURNING ` + runColumns
}

// ClaimQueuedRun atomically moves the oldest queued run to running and
// returns it. Returns nil, nil when no run is queued. Each claim flips
// one row or none, so concurrent claimers never share a run.
func (s *SQLStore) ClaimQueuedRun(ctx context.Context) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	row := s.db.QueryRowContext(ctx, s.claimQuery(), now)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim run: %w", err)
	}

	s.logger.Debug("claimed run", slog.String("id", run.ID))
	return run, nil
}

// FinishRun completes a running run with the given terminal status.
func (s *SQLStore) FinishRun(ctx context.Context, id string, status core.RunStatus, metrics map[string]string, errMsg string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if status != core.RunStatusSucceeded && status != core.RunStatusFailed {
		return fmt.Errorf("finish with status %q: %w", status, core.ErrInvalidState)
	}

	var metricsJSON *string
	if len(metrics) > 0 {
		b, err := json.Marshal(metrics)
		if err != nil {
			return fmt.Errorf("failed to marshal metrics: %w", err)
		}
		str := string(b)
		metricsJSON = &str
	}

	var errPtr *string
	if errMsg != "" {
		errPtr = &errMsg
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = $1, metrics = $2, error = $3, completed_at = $4
		 WHERE id = $5 AND status = 'running'`,
		string(status), metricsJSON, errPtr, now, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("run %s is not running: %w", id, core.ErrInvalidState)
	}

	return nil
}

// PublishRun transitions a succeeded run to published and records the
// timestamp. The status precondition is part of the update itself, so
// a concurrent double-publish loses cleanly.
func (s *SQLStore) PublishRun(ctx context.Context, ownerID, id string) (time.Time, error) {
	if s.db == nil {
		return time.Time{}, fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = 'published', published_at = $1
		 WHERE id = $2 AND owner_id = $3 AND status = 'succeeded'`,
		now, id, ownerID,
	)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to publish run: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to publish run: %w", err)
	}
	if affected == 1 {
		return now, nil
	}

	// Nothing updated: either the run is not visible to this owner or
	// it is in the wrong status.
	run, err := s.GetRun(ctx, ownerID, id)
	if err != nil {
		return time.Time{}, err
	}
	return time.Time{}, fmt.Errorf("run %s has status %s, want %s: %w",
		id, run.Status, core.RunStatusSucceeded, core.ErrInvalidState)
}

// ListRuns retrieves the most recent runs across all owners, newest
// first. Operator surface only; API reads stay owner-scoped.
func (s *SQLStore) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*core.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LatestFinishedRun returns the newest succeeded or published run for
// an owner, kind, and exact scope. Used by export, which operates on
// the latest completed results for the requested scope.
func (s *SQLStore) LatestFinishedRun(ctx context.Context, ownerID string, kind core.RunKind, sc core.Scope) (*core.Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs
		 WHERE owner_id = $1 AND kind = $2 AND period = $3 AND category = $4
		   AND supplier = $5 AND confidence = $6
		   AND status IN ('succeeded', 'published')
		 ORDER BY created_at DESC LIMIT 1`,
		ownerID, string(kind), sc.Period, sc.Category, sc.Supplier, sc.Confidence,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no finished run for scope: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return run, nil
}

// SaveProjectionRows writes the computed rows for a run.
func (s *SQLStore) SaveProjectionRows(ctx context.Context, runID string, rows []core.ProjectionRow) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	for _, r := range rows {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO projection_rows (run_id, period, category, supplier, demand, unit_cost, spend)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			runID, r.Period, r.Category, r.Supplier,
			r.Demand.String(), r.UnitCost.String(), r.Spend.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to save projection row: %w", err)
		}
	}

	return nil
}

// GetProjectionRows loads the rows for a run, owner-scoped through the
// runs table.
func (s *SQLStore) GetProjectionRows(ctx context.Context, ownerID, runID string) ([]core.ProjectionRow, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.period, p.category, p.supplier, p.demand, p.unit_cost, p.spend
		 FROM projection_rows p
		 JOIN runs r ON r.id = p.run_id
		 WHERE p.run_id = $1 AND r.owner_id = $2
		 ORDER BY p.period, p.category, p.supplier`,
		runID, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get projection rows: %w", err)
	}
	defer rows.Close()

	var result []core.ProjectionRow
	for rows.Next() {
		var r core.ProjectionRow
		var demand, unitCost, spend string
		if err := rows.Scan(&r.Period, &r.Category, &r.Supplier, &demand, &unitCost, &spend); err != nil {
			return nil, fmt.Errorf("failed to scan projection row: %w", err)
		}
		if r.Demand, err = decimal.NewFromString(demand); err != nil {
			return nil, fmt.Errorf("bad demand value %q: %w", demand, err)
		}
		if r.UnitCost, err = decimal.NewFromString(unitCost); err != nil {
			return nil, fmt.Errorf("bad unit cost value %q: %w", unitCost, err)
		}
		if r.Spend, err = decimal.NewFromString(spend); err != nil {
			return nil, fmt.Errorf("bad spend value %q: %w", spend, err)
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*core.Run, error) {
	run := &core.Run{}
	var kind, status string
	var metrics, errMsg sql.NullString
	var startedAt, completedAt, publishedAt sql.NullTime

	err := row.Scan(
		&run.ID, &run.OwnerID, &kind,
		&run.Scope.Period, &run.Scope.Category, &run.Scope.Supplier, &run.Scope.Confidence,
		&status, &metrics, &errMsg,
		&run.CreatedAt, &startedAt, &completedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.Kind = core.RunKind(kind)
	run.Status = core.RunStatus(status)
	if errMsg.Valid {
		run.Error = errMsg.String
	}
	if metrics.Valid && metrics.String != "" {
		if err := json.Unmarshal([]byte(metrics.String), &run.Metrics); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metrics: %w", err)
		}
	}
	if startedAt.Valid {
		t := startedAt.Time
		run.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		run.PublishedAt = &t
	}

	return run, nil
}
