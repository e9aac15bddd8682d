package state

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"database/sql"

	"github.com/slahq/sla/internal/core"
)

// CreateException inserts a new open exception. ID and detection
// timestamp are assigned here when absent.
func (s *SQLStore) CreateException(ctx context.Context, ex *core.Exception) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	if ex.ID == "" {
		ex.ID = generateID()
	}
	if ex.DetectedAt.IsZero() {
		ex.DetectedAt = time.Now().UTC()
	}

	s.logger.Debug("creating exception",
		slog.String("id", ex.ID),
		slog.String("type", string(ex.Type)),
		slog.String("owner", ex.OwnerID))

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exceptions (id, owner_id, type, severity, message, period, category, supplier, confidence, detected_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		ex.ID, ex.OwnerID, string(ex.Type), string(ex.Severity), ex.Message,
		ex.Scope.Period, ex.Scope.Category, ex.Scope.Supplier, ex.Scope.Confidence,
		ex.DetectedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create exception: %w", err)
	}

	return nil
}

// ListOpenExceptions returns the caller's unresolved exceptions,
// newest first, optionally narrowed to a scope's category and
// supplier.
func (s *SQLStore) ListOpenExceptions(ctx context.Context, ownerID string, sc *core.Scope) ([]*core.Exception, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	query := `SELECT id, owner_id, type, severity, message, period, category, supplier, confidence, detected_at
		 FROM exceptions WHERE owner_id = $1 AND resolved = FALSE`
	args := []any{ownerID}

	if sc != nil {
		if sc.Category != "" && sc.Category != "all" {
			args = append(args, sc.Category)
			query += " AND category = $" + strconv.Itoa(len(args))
		}
		if sc.Supplier != "" && sc.Supplier != "all" {
			args = append(args, sc.Supplier)
			query += " AND supplier = $" + strconv.Itoa(len(args))
		}
	}
	query += " ORDER BY detected_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list exceptions: %w", err)
	}
	defer rows.Close()

	exceptions := []*core.Exception{}
	for rows.Next() {
		ex := &core.Exception{}
		var typ, severity string
		err := rows.Scan(
			&ex.ID, &ex.OwnerID, &typ, &severity, &ex.Message,
			&ex.Scope.Period, &ex.Scope.Category, &ex.Scope.Supplier, &ex.Scope.Confidence,
			&ex.DetectedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exception: %w", err)
		}
		ex.Type = core.ExceptionType(typ)
		ex.Severity = core.Severity(severity)
		exceptions = append(exceptions, ex)
	}

	return exceptions, rows.Err()
}

// ResolveException marks an exception resolved. Resolution is one-way:
// resolving an already-resolved exception is an invalid state, and a
// missing or foreign-owned exception reports not found.
func (s *SQLStore) ResolveException(ctx context.Context, ownerID, id, note string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	var notePtr *string
	if note != "" {
		notePtr = &note
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE exceptions SET resolved = TRUE, resolution_note = $1, resolved_at = $2
		 WHERE id = $3 AND owner_id = $4 AND resolved = FALSE`,
		notePtr, now, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to resolve exception: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to resolve exception: %w", err)
	}
	if affected == 1 {
		return nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM exceptions WHERE id = $1 AND owner_id = $2)`,
		id, ownerID,
	).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to resolve exception: %w", err)
	}
	if exists {
		return fmt.Errorf("exception %s already resolved: %w", id, core.ErrInvalidState)
	}
	return fmt.Errorf("exception %s: %w", id, core.ErrNotFound)
}
