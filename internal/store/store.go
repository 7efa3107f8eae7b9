// Package store persists run metadata and per-step time-series output --
// the concrete implementation of the external interface's "output files"
// collaborator for callers that want durable storage instead of (or in
// addition to) plain files.
package store

import (
	"context"

	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
)

// RunMetadata records the identifying information for one simulation run.
type RunMetadata struct {
	RunID     string
	Seed      int64
	NumAgents int
	StartedAt string // RFC3339; kept as string so callers aren't forced through time.Time at the boundary.
}

// StepRecord is one row of a run's time-series output.
type StepRecord struct {
	RunID string
	Step  int
	Now   float64
	orchestrator.Tallies
}

// Repository is the storage-backend-agnostic interface both the sqlite and
// postgres backends implement. cmd/simserver's run manager holds a
// Repository; cmd/simrunner uses the concrete sqlite store directly.
type Repository interface {
	SaveRun(ctx context.Context, meta RunMetadata) error
	AppendStep(ctx context.Context, rec StepRecord) error
	StepsForRun(ctx context.Context, runID string) ([]StepRecord, error)
	Close() error
}
