// Package history persists run outcomes in a local SQLite database so
// `buildforge history` can show what was built, when, and how it ended.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultDBPath returns the history database location under a project root.
func DefaultDBPath(rootPath string) string {
	return filepath.Join(rootPath, ".buildforge", "history.db")
}

// Run is one recorded orchestrator run.
type Run struct {
	ID         string
	RootPath   string
	Scheme     string // "" for entry-scheme runs
	Status     string
	Error      string
	StartedAt  time.Time
	DurationMS int64
}

// Store records and lists runs.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open creates a SQLite-backed store. Use ":memory:" for tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root_path TEXT NOT NULL,
		scheme TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run. A zero ID gets a fresh UUID; the stored run is
// returned with its final ID.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, root_path, scheme, status, error, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.RootPath, run.Scheme, run.Status, run.Error, run.StartedAt.Unix(), run.DurationMS,
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, root_path, scheme, status, error, started_at, duration_ms FROM runs ORDER BY started_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started int64
		var errText sql.NullString
		if err := rows.Scan(&r.ID, &r.RootPath, &r.Scheme, &r.Status, &errText, &started, &r.DurationMS); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.Unix(started, 0)
		r.Error = errText.String
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
