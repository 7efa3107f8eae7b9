// Package metrics exposes the per-step simulation tallies and place
// lambda distribution as Prometheus collectors, registered on the
// registry the caller passes in (cmd/simrunner serves its registry on
// :9090).
package metrics

import (
	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/orchestrator"
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors bundles the counters and histogram a run reports to
// Prometheus. It implements orchestrator.Observer so an orchestrator can
// report directly into it every step.
type Collectors struct {
	InfectedTotal     prometheus.Counter
	RecoveredTotal    prometheus.Counter
	DeadTotal         prometheus.Counter
	CurrentlyInfected prometheus.Gauge
	PlaceLambda       prometheus.Histogram

	lastTallies orchestrator.Tallies
}

// NewCollectors builds and registers a fresh set of collectors on reg,
// labeled with runID so multiple concurrent runs (a parameter sweep) don't
// collide on the same registry.
func NewCollectors(reg prometheus.Registerer, runID string) *Collectors {
	constLabels := prometheus.Labels{"run_id": runID}
	c := &Collectors{
		InfectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_infected_total", Help: "Cumulative number of agents ever infected.", ConstLabels: constLabels,
		}),
		RecoveredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_recovered_total", Help: "Cumulative number of agents that recovered.", ConstLabels: constLabels,
		}),
		DeadTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sim_dead_total", Help: "Cumulative number of agents that died.", ConstLabels: constLabels,
		}),
		CurrentlyInfected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sim_currently_infected", Help: "Agents presently exposed or symptomatic.", ConstLabels: constLabels,
		}),
		PlaceLambda: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "sim_place_lambda", Help: "Distribution of per-step place infection pressure (lambda).",
			ConstLabels: constLabels, Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(c.InfectedTotal, c.RecoveredTotal, c.DeadTotal, c.CurrentlyInfected, c.PlaceLambda)
	return c
}

// ObserveStep implements orchestrator.Observer: it publishes the delta in
// cumulative counters since the last step and the current
// currently-infected gauge value.
func (c *Collectors) ObserveStep(step int, now float64, t orchestrator.Tallies) {
	if d := t.InfectedTotal - c.lastTallies.InfectedTotal; d > 0 {
		c.InfectedTotal.Add(float64(d))
	}
	if d := t.RecoveredTotal - c.lastTallies.RecoveredTotal; d > 0 {
		c.RecoveredTotal.Add(float64(d))
	}
	if d := t.DeadTotal - c.lastTallies.DeadTotal; d > 0 {
		c.DeadTotal.Add(float64(d))
	}
	c.CurrentlyInfected.Set(float64(t.CurrentlyInfected()))
	c.lastTallies = t
}

// ObservePlaceLambdas records the current lambda of every place into the
// histogram. The orchestrator does not call it; a caller that wants the
// histogram filled calls it while the lambdas are still set, before
// Reset zeroes them.
func (c *Collectors) ObservePlaceLambdas(pop *model.Population) {
	for _, h := range pop.Households {
		c.PlaceLambda.Observe(h.Lambda())
	}
	for _, s := range pop.Schools {
		c.PlaceLambda.Observe(s.Lambda())
	}
	for _, w := range pop.Workplaces {
		c.PlaceLambda.Observe(w.Lambda())
	}
	for _, h := range pop.Hospitals {
		c.PlaceLambda.Observe(h.Lambda())
	}
}
