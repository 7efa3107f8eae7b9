package transitions

import (
	"math/rand"

	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/model"
)

// FluPool tracks which susceptible agents currently carry influenza-like
// illness (ILI) rather than COVID, and swaps membership when a carrier
// contracts COVID. A carrier that finishes a false-positive isolation
// period is restored to circulation and stays in the pool.
// Agents bearing ILI consume test capacity (a carrier is scheduled for a
// test the moment it joins the pool, exactly like a suspected COVID case)
// but never contribute to place lambdas the way a COVID case does.
type FluPool struct {
	states *model.StatesManager
	params Params
}

// NewFluPool builds a FluPool bound to the given states manager, using
// params' test-timing fields to schedule each carrier's test.
func NewFluPool(states *model.StatesManager, params Params) *FluPool {
	return &FluPool{states: states, params: params}
}

// scheduleTest picks a hospital-vs-car test site and records the
// test/result times for a newly created ILI carrier. Unlike
// Regular.scheduleTest, it never withdraws the carrier from public places
// -- a flu case carries none of the isolation risk of a suspected COVID
// case until its result actually comes back positive.
func (f *FluPool) scheduleTest(a *model.Agent, sampler *infection.Sampler, now float64, r *rand.Rand) {
	timeOfTest := now + f.params.TimeDecisionToTest
	timeOfResults := timeOfTest + f.params.TimeTestToResults
	if sampler.TestedInHospital(r, f.params.FractionTestedInHospital) {
		f.states.SetWaitingForTestInHospital(a, timeOfTest, timeOfResults)
	} else {
		f.states.SetWaitingForTestInCar(a, timeOfTest, timeOfResults)
	}
}

// Seed flags a fraction of the susceptible population as ILI carriers and
// schedules each one's test, used at initialization to establish the
// target flu prevalence.
func (f *FluPool) Seed(pop *model.Population, fraction float64, sampler *infection.Sampler, now float64, r *rand.Rand) {
	for _, a := range pop.Agents {
		if a.Susceptible() && r.Float64() < fraction {
			f.states.ResetReturningFlu(a)
			f.scheduleTest(a, sampler, now, r)
		}
	}
}

// SwapOnInfection removes carrier from the flu pool (it just contracted
// COVID, so it is no longer an ILI case) and, if any other eligible
// susceptible remains, draws a replacement carrier, scheduling its test the same way
// Seed does, to keep flu prevalence steady.
func (f *FluPool) SwapOnInfection(pop *model.Population, carrier *model.Agent, sampler *infection.Sampler, now float64, r *rand.Rand) {
	f.states.SetFormerFlu(carrier)
	candidates := make([]*model.Agent, 0)
	for _, a := range pop.Agents {
		if a != carrier && a.Susceptible() && !a.SymptomaticNonCovid() {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return
	}
	replacement := candidates[r.Intn(len(candidates))]
	f.states.ResetReturningFlu(replacement)
	f.scheduleTest(replacement, sampler, now, r)
}

// Step runs the per-step ILI testing/isolation transitions for a single
// flu carrier: a scheduled test surfaces a false-positive or a true
// negative, and a false positive begins a fixed home-isolation period
// after which the carrier is restored to normal circulation.
func (f *FluPool) Step(pop *model.Population, a *model.Agent, now, recoveryTime float64, sampler *infection.Sampler, fractionFalsePositive float64, r *rand.Rand) error {
	if a.TestedAwaitingTest() && now >= a.TimeOfTest() {
		f.states.SetTestedToAwaitingResults(a)
	}
	if a.TestedAwaitingResults() && now >= a.TimeOfResults() {
		if sampler.FalsePositiveTestResult(r, fractionFalsePositive) {
			f.states.SetTestedFalsePositive(a)
			f.states.SetHomeIsolation(a)
			a.SetRecoveryDuration(recoveryTime)
			a.SetRecoveryTime(now)
			if err := pop.WithdrawFromPublicPlaces(a); err != nil {
				return err
			}
		} else {
			f.states.SetTestedNegative(a)
		}
	}
	if a.HomeIsolated() && a.TestedFalsePositive() && now >= a.RecoveryTime() {
		f.states.ClearHomeIsolation(a)
		a.ClearTesting()
		if err := pop.RestoreToPublicPlaces(a); err != nil {
			return err
		}
	}
	checkImpossibleState(a)
	return nil
}
