// Package history records solve runs to a local sqlite database: when a
// run happened, what file it came from, whether it certified optimal, and
// its objective value, each tagged with a UUID run ID.
//
// What: Store, Record, and Recent.
// How: database/sql against modernc.org/sqlite, the pure-Go sqlite driver
// this codebase's storage benchmarks already exercise, with
// github.com/google/uuid tagging each row — the same library this
// codebase's storage layer uses to parse and format UUIDs.
// Why: a single-file sqlite database is the lightest way to give the
// batch scheduler and the CLI a shared, durable run log without standing
// up a server.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	mode        TEXT NOT NULL,
	objective   REAL NOT NULL,
	optimal     INTEGER NOT NULL,
	iterations  INTEGER NOT NULL,
	recorded_at TEXT NOT NULL
);`

// Run is one recorded solve.
type Run struct {
	ID         uuid.UUID
	Source     string
	Mode       string
	Objective  float64
	Optimal    bool
	Iterations int
	RecordedAt time.Time
}

// Store wraps the history database connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the sqlite database at path and ensures
// the run-history table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a new run, generating a fresh UUID for it.
func (s *Store) Record(ctx context.Context, source, mode string, objective float64, optimal bool, iterations int) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, source, mode, objective, optimal, iterations, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), source, mode, objective, boolToInt(optimal), iterations, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// Recent returns the most recently recorded runs, newest first, up to
// limit rows.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, mode, objective, optimal, iterations, recorded_at FROM runs ORDER BY recorded_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			idStr, source, mode, recordedAt string
			objective                       float64
			optimalInt, iterations          int
		)
		if err := rows.Scan(&idStr, &source, &mode, &objective, &optimalInt, &iterations, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parsing run id %q: %w", idStr, err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing recorded_at %q: %w", recordedAt, err)
		}

		out = append(out, Run{
			ID:         id,
			Source:     source,
			Mode:       mode,
			Objective:  objective,
			Optimal:    optimalInt != 0,
			Iterations: iterations,
			RecordedAt: recorded,
		})
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
