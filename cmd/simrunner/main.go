// Command simrunner is a thin demo driver: it wires config, the
// simulation core, a sqlite-backed store, and a Prometheus metrics
// endpoint together and runs a fixed number of steps, printing per-step
// tallies. It owns every bit of I/O the core itself never touches. The
// HTTP/websocket control surface in internal/api is a separate
// collaborator, meant for a long-running server process (cmd/simserver)
// rather than this fixed-length demo run.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/Kylepayen02/ABM-COVID/internal/demo"
	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
	"github.com/Kylepayen02/ABM-COVID/internal/runid"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
	"github.com/Kylepayen02/ABM-COVID/internal/store"
	"github.com/Kylepayen02/ABM-COVID/internal/telemetry"
	"github.com/Kylepayen02/ABM-COVID/internal/telemetry/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "simrunner:", err)
		os.Exit(1)
	}
}

func run() error {
	log := telemetry.NoOp()
	id := runid.New()
	log = log.WithRun(id.String())

	seed := time.Now().UnixNano()
	rng := rand.New(rand.NewSource(seed))

	params := demo.Parameters()
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	mortality, err := demo.AgeTable(0.0002, 0.02, 0.35)
	if err != nil {
		return err
	}
	hospitalization, err := demo.AgeTable(0.01, 0.05, 0.30)
	if err != nil {
		return err
	}
	icu, err := demo.AgeTable(0.002, 0.02, 0.15)
	if err != nil {
		return err
	}

	sampler, err := infection.NewSampler(params.InfectionParams(), mortality, hospitalization, icu)
	if err != nil {
		return err
	}

	pop := demo.Population(50, 10)

	const dt = 1.0
	const numSteps = 200

	orc := orchestrator.New(pop, dt, rng, sampler, params.TransitionParams(), orchestrator.FluParams{
		FractionWithFlu:       params.FractionWithFlu,
		FractionFalsePositive: params.FractionFalsePositive,
		RecoveryTime:          params.RecoveryTime,
	})

	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry, id.String())
	orc.AddObserver(collectors)

	metricsSrv := &http.Server{Addr: ":9090", Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{})}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, "metrics server stopped unexpectedly")
		}
	}()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(ctx)
	}()

	repo, err := store.NewSQLiteStore("simrunner.db")
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	if err := repo.SaveRun(ctx, store.RunMetadata{
		RunID:     id.String(),
		Seed:      seed,
		NumAgents: len(pop.Agents),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		return err
	}

	fmt.Printf("run_id, step, now, infected_total, recovered_total, dead_total, currently_infected\n")
	for i := 0; i < numSteps; i++ {
		if err := orc.Advance(); err != nil {
			if simerr.Is(err, simerr.InvariantViolation) {
				return fmt.Errorf("run aborted: %w", err)
			}
			return err
		}
		t := orc.Tallies()
		fmt.Printf("%s, %d, %.1f, %d, %d, %d, %d\n", id, orc.Step(), orc.Now(), t.InfectedTotal, t.RecoveredTotal, t.DeadTotal, t.CurrentlyInfected())
		if err := repo.AppendStep(ctx, store.StepRecord{RunID: id.String(), Step: orc.Step(), Now: orc.Now(), Tallies: t}); err != nil {
			return err
		}
	}
	return nil
}
