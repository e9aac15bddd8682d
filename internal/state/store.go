// Package state implements core.Store on a relational database. The
// production backend is Postgres through the pgx driver; local
// development and tests use SQLite with the same query text (SQLite
// binds $1-style ordinals too, as long as each appears once in
// ascending order).
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// SQLStore implements core.Store.
type SQLStore struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Open connects to the database named by driver and dsn.
func Open(driver, dsn string, logger *slog.Logger) (*SQLStore, error) {
	var db *sql.DB
	var err error

	switch driver {
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
	case DriverSQLite:
		db, err = sql.Open("sqlite", dsn)
		if err == nil && strings.Contains(dsn, ":memory:") {
			// Each pooled connection would otherwise see its own
			// empty in-memory database.
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, fmt.Errorf("unknown database driver: %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return NewWithDB(db, driver, logger), nil
}

// NewWithDB wraps an existing connection. Used by tests that inject a
// mock or a pre-opened database.
func NewWithDB(db *sql.DB, driver string, logger *slog.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		driver: driver,
		logger: logger.With("component", "state"),
	}
}

// DB exposes the underlying connection for migrations.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping verifies the database connection.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	return s.db.PingContext(ctx)
}
