package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go sqlite driver, no cgo
)

// SQLiteStore is a Repository backed by a single embedded sqlite database
// file -- the natural choice for a local, single-node run.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) a sqlite database at path
// and ensures its schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	s := &SQLiteStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			num_agents INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS steps (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			now REAL NOT NULL,
			infected_total INTEGER NOT NULL,
			recovered_total INTEGER NOT NULL,
			dead_total INTEGER NOT NULL,
			PRIMARY KEY (run_id, step)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite store: %w", err)
		}
	}
	return nil
}

// SaveRun inserts or replaces the metadata row for a run.
func (s *SQLiteStore) SaveRun(ctx context.Context, meta RunMetadata) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs (run_id, seed, num_agents, started_at) VALUES (?, ?, ?, ?)`,
		meta.RunID, meta.Seed, meta.NumAgents, meta.StartedAt)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// AppendStep inserts one time-series row.
func (s *SQLiteStore) AppendStep(ctx context.Context, rec StepRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO steps (run_id, step, now, infected_total, recovered_total, dead_total) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.Step, rec.Now, rec.InfectedTotal, rec.RecoveredTotal, rec.DeadTotal)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	return nil
}

// StepsForRun returns every recorded step for runID in step order.
func (s *SQLiteStore) StepsForRun(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, step, now, infected_total, recovered_total, dead_total FROM steps WHERE run_id = ? ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []StepRecord
	for rows.Next() {
		var rec StepRecord
		if err := rows.Scan(&rec.RunID, &rec.Step, &rec.Now, &rec.InfectedTotal, &rec.RecoveredTotal, &rec.DeadTotal); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }
