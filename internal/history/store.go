package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoRuns indicates the store has no recorded runs yet.
var ErrNoRuns = errors.New("no runs recorded")

// Run is one recorded check/render run.
type Run struct {
	ID         string
	StartedAt  time.Time
	Status     string // "ok" or "failed"
	PageRefs   int
	Links      int
	Unresolved int
	DurationMS int64
	Detail     string
}

// Store persists run history in SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  INTEGER NOT NULL,
	status      TEXT NOT NULL,
	page_refs   INTEGER NOT NULL,
	links       INTEGER NOT NULL,
	unresolved  INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	detail      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record inserts a run.
func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, status, page_refs, links, unresolved, duration_ms, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Status, run.PageRefs, run.Links,
		run.Unresolved, run.DurationMS, run.Detail)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, status, page_refs, links, unresolved, duration_ms, detail
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMilli int64
		if err := rows.Scan(&r.ID, &startedMilli, &r.Status, &r.PageRefs, &r.Links,
			&r.Unresolved, &r.DurationMS, &r.Detail); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMilli).UTC()
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Last returns the most recent run.
func (s *Store) Last(ctx context.Context) (Run, error) {
	runs, err := s.Recent(ctx, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[0], nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
