package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/slahq/sla/internal/core"
)

// GetLayout loads the raw layout blob for an owner and key.
func (s *SQLStore) GetLayout(ctx context.Context, ownerID, key string) ([]byte, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var blob string
	err := s.db.QueryRowContext(ctx,
		`SELECT blob FROM layouts WHERE owner_id = $1 AND key = $2`,
		ownerID, key,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("layout %s: %w", key, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	return []byte(blob), nil
}

// SetLayout upserts the layout blob for an owner and key. Last write
// wins; there is no merge.
func (s *SQLStore) SetLayout(ctx context.Context, ownerID, key string, blob []byte) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO layouts (owner_id, key, blob, updated_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (owner_id, key) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		ownerID, key, string(blob), now,
	)
	if err != nil {
		return fmt.Errorf("failed to set layout: %w", err)
	}

	return nil
}
