package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQLite connection and provides access to repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		drv.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, drv: drv}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// PhaseRepo returns a PhaseRepo backed by this store.
func (s *Store) PhaseRepo() PhaseRepo {
	return &phaseRepo{drv: s.drv}
}

func migrate(ctx context.Context, drv *entsql.Driver) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS phase_events (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			phase TEXT NOT NULL,
			minutes INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS phase_events_ended_at ON phase_events (ended_at)`,
		`CREATE INDEX IF NOT EXISTS phase_events_run_id ON phase_events (run_id)`,
	}
	for _, stmt := range stmts {
		if err := drv.Exec(ctx, stmt, []any{}, nil); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. FOCUSFLOW_DB environment variable
// 2. $XDG_DATA_HOME/focusflow/history.db
// 3. ~/.local/share/focusflow/history.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("FOCUSFLOW_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "focusflow", "history.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
