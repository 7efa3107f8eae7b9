package main

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Kylepayen02/ABM-COVID/internal/api"
	"github.com/Kylepayen02/ABM-COVID/internal/blob"
	"github.com/Kylepayen02/ABM-COVID/internal/cache"
	"github.com/Kylepayen02/ABM-COVID/internal/config"
	"github.com/Kylepayen02/ABM-COVID/internal/demo"
	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
	"github.com/Kylepayen02/ABM-COVID/internal/runid"
	"github.com/Kylepayen02/ABM-COVID/internal/store"
	"github.com/Kylepayen02/ABM-COVID/internal/telemetry"
)

// runManager owns every in-flight simulation run and implements
// api.RunController, so the HTTP surface can start, stop, and poll runs
// without knowing anything about the orchestrator itself.
type runManager struct {
	log      telemetry.Logger
	hub      *api.Hub
	repo     store.Repository
	cache    *cache.Cache
	archiver *blob.Archiver // nil disables snapshot archiving

	mu   sync.Mutex
	runs map[string]*managedRun
}

type managedRun struct {
	orc    *orchestrator.Orchestrator
	cancel context.CancelFunc
}

func newRunManager(log telemetry.Logger, hub *api.Hub, repo store.Repository, c *cache.Cache, archiver *blob.Archiver) *runManager {
	return &runManager{log: log, hub: hub, repo: repo, cache: c, archiver: archiver, runs: make(map[string]*managedRun)}
}

// hubObserver adapts Hub.Broadcast to orchestrator.Observer so the
// orchestrator's own step loop never has to know a websocket hub exists.
type hubObserver struct {
	hub   *api.Hub
	runID string
}

func (h hubObserver) ObserveStep(step int, now float64, t orchestrator.Tallies) {
	h.hub.Broadcast(api.StepMessage{RunID: h.runID, Step: step, Now: now, Tally: t})
}

// storeObserver persists every step's tallies as they're produced, rather
// than batching a whole run's worth in memory.
type storeObserver struct {
	ctx   context.Context
	repo  store.Repository
	runID string
	log   telemetry.Logger
}

func (s storeObserver) ObserveStep(step int, now float64, t orchestrator.Tallies) {
	if err := s.repo.AppendStep(s.ctx, store.StepRecord{RunID: s.runID, Step: step, Now: now, Tallies: t}); err != nil {
		s.log.Error(err, "append step failed")
	}
}

// Start builds a fresh demo world and orchestrator, registers it under a
// new run ID, and steps it in a background goroutine. It satisfies
// api.RunController.
func (m *runManager) Start(overrides map[string]float64) (string, error) {
	id := runid.New()
	log := m.log.WithRun(id.String())

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	p := demo.Parameters()
	applyOverrides(&p, overrides)
	if err := p.Validate(); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	mortality, err := demo.AgeTable(0.0002, 0.02, 0.35)
	if err != nil {
		return "", err
	}
	hospitalization, err := demo.AgeTable(0.01, 0.05, 0.30)
	if err != nil {
		return "", err
	}
	icu, err := demo.AgeTable(0.002, 0.02, 0.15)
	if err != nil {
		return "", err
	}
	sampler, err := infection.NewSampler(p.InfectionParams(), mortality, hospitalization, icu)
	if err != nil {
		return "", err
	}

	pop := demo.Population(25, 5)
	const dt = 1.0
	orc := orchestrator.New(pop, dt, rng, sampler, p.TransitionParams(), orchestrator.FluParams{
		FractionWithFlu:       p.FractionWithFlu,
		FractionFalsePositive: p.FractionFalsePositive,
		RecoveryTime:          p.RecoveryTime,
	})

	ctx, cancel := context.WithCancel(context.Background())
	orc.AddObserver(hubObserver{hub: m.hub, runID: id.String()})
	orc.AddObserver(storeObserver{ctx: ctx, repo: m.repo, runID: id.String(), log: log})

	if err := m.repo.SaveRun(ctx, store.RunMetadata{
		RunID:     id.String(),
		Seed:      seed,
		NumAgents: len(pop.Agents),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		cancel()
		return "", err
	}

	if m.cache != nil {
		if err := m.cache.PutParameters(ctx, "params:"+id.String(), p, time.Hour); err != nil {
			log.Error(err, "cache parameters failed")
		}
		if err := m.cache.PublishRunStatus(ctx, cache.RunStatusEvent{RunID: id.String(), Status: "started"}); err != nil {
			log.Error(err, "publish run status failed")
		}
	}

	m.mu.Lock()
	m.runs[id.String()] = &managedRun{orc: orc, cancel: cancel}
	m.mu.Unlock()

	go m.driveRun(ctx, id.String(), orc, log)

	return id.String(), nil
}

// driveRun steps orc on a fixed real-time cadence until either the
// outbreak resolves (no agent currently infected) or ctx is cancelled by
// Stop, then archives a final snapshot and publishes a completion event.
func (m *runManager) driveRun(ctx context.Context, id string, orc *orchestrator.Orchestrator, log telemetry.Logger) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.finishRun(id, "stopped")
			return
		case <-ticker.C:
			if err := orc.Advance(); err != nil {
				log.Error(err, "advance failed")
				m.finishRun(id, "failed")
				return
			}
			if orc.Step() > 0 && orc.Tallies().CurrentlyInfected() == 0 {
				m.finishRun(id, "completed")
				return
			}
		}
	}
}

func (m *runManager) finishRun(id, status string) {
	m.mu.Lock()
	run, ok := m.runs[id]
	if ok {
		delete(m.runs, id)
	}
	m.mu.Unlock()
	if !ok {
		return
	}
	run.cancel()

	ctx := context.Background()
	if m.archiver != nil {
		t := run.orc.Tallies()
		snapshot := fmt.Sprintf("run_id,step,now,infected_total,recovered_total,dead_total\n%s,%d,%.1f,%d,%d,%d\n",
			id, run.orc.Step(), run.orc.Now(), t.InfectedTotal, t.RecoveredTotal, t.DeadTotal)
		if err := m.archiver.PutSnapshot(ctx, "runs/"+id+"/final.csv", []byte(snapshot)); err != nil {
			m.log.Error(err, "archive snapshot failed")
		}
	}
	if m.cache != nil {
		if err := m.cache.PublishRunStatus(ctx, cache.RunStatusEvent{RunID: id, Status: status}); err != nil {
			m.log.Error(err, "publish run status failed")
		}
	}
}

// Stop cancels a running simulation, satisfying api.RunController.
func (m *runManager) Stop(runID string) error {
	m.mu.Lock()
	run, ok := m.runs[runID]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("run %q not found", runID)
	}
	run.cancel()
	return nil
}

// Tallies returns the current tallies for a run, satisfying
// api.RunController.
func (m *runManager) Tallies(runID string) (orchestrator.Tallies, bool) {
	m.mu.Lock()
	run, ok := m.runs[runID]
	m.mu.Unlock()
	if !ok {
		return orchestrator.Tallies{}, false
	}
	return run.orc.Tallies(), true
}

// applyOverrides copies recognized numeric overrides from a start-run
// request onto the demo parameter set. Unrecognized keys are ignored --
// the HTTP surface accepts a partial patch, not the full closed parameter
// set internal/config expects from a file.
func applyOverrides(p *config.Parameters, overrides map[string]float64) {
	if v, ok := overrides["household transmission rate"]; ok {
		p.HouseholdTransmissionRate = v
	}
	if v, ok := overrides["workplace transmission rate"]; ok {
		p.WorkplaceTransmissionRate = v
	}
	if v, ok := overrides["fraction with flu"]; ok {
		p.FractionWithFlu = v
	}
}
