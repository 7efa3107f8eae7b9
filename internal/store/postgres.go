package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is a Repository backed by a shared postgres database --
// the alternative backend for multi-run deployments (e.g. several
// orchestrator processes in a parameter sweep sharing one database).
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to dsn and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres store: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			seed BIGINT NOT NULL,
			num_agents INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS steps (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			now DOUBLE PRECISION NOT NULL,
			infected_total INTEGER NOT NULL,
			recovered_total INTEGER NOT NULL,
			dead_total INTEGER NOT NULL,
			PRIMARY KEY (run_id, step)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate postgres store: %w", err)
		}
	}
	return nil
}

// SaveRun inserts or updates the metadata row for a run.
func (s *PostgresStore) SaveRun(ctx context.Context, meta RunMetadata) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (run_id, seed, num_agents, started_at) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id) DO UPDATE SET seed = $2, num_agents = $3, started_at = $4`,
		meta.RunID, meta.Seed, meta.NumAgents, meta.StartedAt)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// AppendStep inserts or replaces one time-series row.
func (s *PostgresStore) AppendStep(ctx context.Context, rec StepRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO steps (run_id, step, now, infected_total, recovered_total, dead_total) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (run_id, step) DO UPDATE SET now = $3, infected_total = $4, recovered_total = $5, dead_total = $6`,
		rec.RunID, rec.Step, rec.Now, rec.InfectedTotal, rec.RecoveredTotal, rec.DeadTotal)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	return nil
}

// StepsForRun returns every recorded step for runID in step order.
func (s *PostgresStore) StepsForRun(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT run_id, step, now, infected_total, recovered_total, dead_total FROM steps WHERE run_id = $1 ORDER BY step`, runID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

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

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
