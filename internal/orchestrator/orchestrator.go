// Package orchestrator owns the only mutable global state in the
// simulator: the current step time and the running tallies. It sequences
// the per-step phases -- contribute, transition, reset, advance -- and is
// the boundary the ambient stack (logging, metrics, persistence) wraps
// around the otherwise I/O-free core.
package orchestrator

import (
	"math/rand"

	"github.com/Kylepayen02/ABM-COVID/internal/contribution"
	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/transitions"
)

// Tallies holds the running, monotonically-increasing counters the
// orchestrator maintains across the life of a run.
type Tallies struct {
	InfectedTotal  int
	RecoveredTotal int
	DeadTotal      int
}

// CurrentlyInfected returns the number of agents presently exposed or
// symptomatic (infected but not yet resolved).
func (t Tallies) CurrentlyInfected() int {
	return t.InfectedTotal - t.RecoveredTotal - t.DeadTotal
}

// Observer receives per-step counters as they are produced, satisfying the
// optional interactions/observer hook the source's "interactions"
// collection API left open without altering simulation semantics --
// internal/telemetry/metrics implements this interface, and cmd/simserver
// adapts internal/api's websocket hub to it.
type Observer interface {
	ObserveStep(step int, now float64, t Tallies)
}

// Orchestrator sequences one run's steps over a Population.
type Orchestrator struct {
	pop         *model.Population
	dt          float64
	step        int
	now         float64
	rng         *rand.Rand
	contrib     *contribution.Engine
	transitions *transitions.Regular
	flu         *transitions.FluPool
	fluParams   FluParams
	sampler     *infection.Sampler
	states      *model.StatesManager
	tallies     Tallies
	observers   []Observer
}

// FluParams bundles the flu/ILI-branch parameters the orchestrator needs
// to step flu carriers.
type FluParams struct {
	FractionWithFlu       float64
	FractionFalsePositive float64
	RecoveryTime          float64
}

// New builds an Orchestrator ready to run steps of size dt over pop.
// Agents already exposed or symptomatic in pop are counted in
// InfectedTotal.
func New(pop *model.Population, dt float64, rng *rand.Rand, sampler *infection.Sampler, tp transitions.Params, fp FluParams) *Orchestrator {
	states := model.NewStatesManager()
	o := &Orchestrator{
		pop:         pop,
		dt:          dt,
		rng:         rng,
		contrib:     contribution.NewEngine(),
		transitions: transitions.New(tp, sampler, states),
		flu:         transitions.NewFluPool(states, tp),
		fluParams:   fp,
		sampler:     sampler,
		states:      states,
	}
	for _, a := range pop.Agents {
		if a.Exposed() || a.Symptomatic() {
			o.tallies.InfectedTotal++
		}
	}
	o.flu.Seed(pop, fp.FractionWithFlu, sampler, 0, rng)
	return o
}

// AddObserver registers an Observer to be notified after every step.
func (o *Orchestrator) AddObserver(obs Observer) {
	o.observers = append(o.observers, obs)
}

// Now returns the current simulation time.
func (o *Orchestrator) Now() float64 { return o.now }

// Step returns the number of completed steps so far.
func (o *Orchestrator) Step() int { return o.step }

// Tallies returns a snapshot of the running counters.
func (o *Orchestrator) Tallies() Tallies { return o.tallies }

// Advance runs exactly one simulation step: contribute, finalize (folded
// into contribute's Step), transition every agent, reset place
// accumulators, then advance time. Phases never interleave.
func (o *Orchestrator) Advance() error {
	if err := o.contrib.Step(o.pop, o.now); err != nil {
		return err
	}
	if err := o.transitionAll(); err != nil {
		return err
	}
	o.contrib.Reset(o.pop)
	o.now += o.dt
	o.step++
	for _, obs := range o.observers {
		obs.ObserveStep(o.step, o.now, o.tallies)
	}
	return nil
}

func (o *Orchestrator) transitionAll() error {
	for _, a := range o.pop.Agents {
		if err := o.transitionAgent(a); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) transitionAgent(a *model.Agent) error {
	switch {
	case a.Removed():
		return nil

	case a.Susceptible():
		if a.SymptomaticNonCovid() {
			if err := o.flu.Step(o.pop, a, o.now, o.fluParams.RecoveryTime, o.sampler, o.fluParams.FractionFalsePositive, o.rng); err != nil {
				return err
			}
		}
		res, err := o.transitions.Susceptible(o.pop, a, o.now, o.dt, o.rng)
		if err != nil {
			return err
		}
		if res.Infected {
			o.tallies.InfectedTotal++
			if a.SymptomaticNonCovid() {
				o.flu.SwapOnInfection(o.pop, a, o.sampler, o.now, o.rng)
			}
		}
		return nil

	case a.Exposed():
		res, err := o.transitions.Exposed(o.pop, a, o.now, o.rng)
		if err != nil {
			return err
		}
		if res.RecoveredWithoutSymptoms {
			o.tallies.RecoveredTotal++
		}
		return nil

	case a.Symptomatic():
		res, err := o.transitions.Symptomatic(o.pop, a, o.now, o.rng)
		if err != nil {
			return err
		}
		if res.Recovered {
			o.tallies.RecoveredTotal++
		}
		if res.Died {
			o.tallies.DeadTotal++
		}
		return nil
	}
	return nil
}
