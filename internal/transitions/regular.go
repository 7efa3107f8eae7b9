// Package transitions applies the disease state machine: for each
// non-removed agent, at most one main progression (susceptible->exposed,
// exposed->symptomatic/removed, symptomatic->removed) plus any due
// sub-transitions (testing, treatment) per step. It reads the lambda
// values internal/contribution finalized this step and never mutates a
// place's accumulator directly -- only membership rosters.
package transitions

import (
	"math/rand"

	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// Regular implements the shared transition shape used by ordinary agents:
// household + school-or-work + hospital-if-employee. Hospital-employee,
// hospital-patient, and flu/ILI carriers reuse these same methods: the
// variant-specific branching lives in SusceptibleLambda and in
// Population's roster helpers, since the only difference between variants
// is which places isolation touches -- never household.
type Regular struct {
	params  Params
	sampler *infection.Sampler
	states  *model.StatesManager
}

// New builds a Regular transitions engine.
func New(params Params, sampler *infection.Sampler, states *model.StatesManager) *Regular {
	return &Regular{params: params, sampler: sampler, states: states}
}

// SusceptibleLambda sums the pressure of every place the agent is
// currently exposed to: household always, school if a student, workplace
// or school if an employee, hospital if a hospital employee.
func (t *Regular) SusceptibleLambda(pop *model.Population, a *model.Agent) (float64, error) {
	var total float64
	if a.HouseholdID() > 0 {
		h, err := pop.HouseholdByID(a.HouseholdID())
		if err != nil {
			return 0, err
		}
		total += h.Lambda()
	}
	if a.Student() && a.SchoolID() > 0 {
		s, err := pop.SchoolByID(a.SchoolID())
		if err != nil {
			return 0, err
		}
		total += s.Lambda()
	}
	if a.WorksAtSchool() && a.SchoolID() > 0 {
		s, err := pop.SchoolByID(a.SchoolID())
		if err != nil {
			return 0, err
		}
		total += s.Lambda()
	} else if a.Working() && a.WorkID() > 0 {
		w, err := pop.WorkplaceByID(a.WorkID())
		if err != nil {
			return 0, err
		}
		total += w.Lambda()
	}
	if a.HospitalEmployee() && a.HospitalID() > 0 {
		h, err := pop.HospitalByID(a.HospitalID())
		if err != nil {
			return 0, err
		}
		total += h.Lambda()
	}
	return total, nil
}

// Susceptible applies the susceptible-to-exposed transition for one step.
func (t *Regular) Susceptible(pop *model.Population, a *model.Agent, now, dt float64, r *rand.Rand) (SusceptibleResult, error) {
	lambda, err := t.SusceptibleLambda(pop, a)
	if err != nil {
		return SusceptibleResult{}, err
	}
	if !t.sampler.Infected(r, lambda, dt) {
		return SusceptibleResult{}, nil
	}

	v, err := t.sampler.InfectiousnessVariability(r)
	if err != nil {
		return SusceptibleResult{}, err
	}
	a.SetInfVar(v)

	recoveringExposed := t.sampler.RecoveringExposed(r)
	if recoveringExposed {
		t.states.SetSusceptibleToExposedNeverSymptomatic(a)
	} else {
		t.states.SetSusceptibleToExposed(a)
	}

	latency := t.sampler.Latency(r)
	if recoveringExposed {
		latency += t.params.RecoveryTime
	}
	a.SetLatencyDuration(latency)
	a.SetLatencyEndTime(now)

	infectiousDelay := t.params.TimeExposedToInfectiousness
	if latency < infectiousDelay {
		infectiousDelay = latency
	}
	a.SetInfectiousnessStartTime(now + infectiousDelay)

	if r.Float64() < t.params.FractionExposedTested {
		t.scheduleTest(pop, a, now, r)
	}

	return SusceptibleResult{Infected: true}, nil
}

// scheduleTest picks a hospital-vs-car test site, records the test/result
// times, and withdraws the agent from school/workplace/hospital-employee
// rosters -- never the household.
func (t *Regular) scheduleTest(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) {
	timeOfTest := now + t.params.TimeDecisionToTest
	timeOfResults := timeOfTest + t.params.TimeTestToResults
	if t.sampler.TestedInHospital(r, t.params.FractionTestedInHospital) {
		t.states.SetWaitingForTestInHospital(a, timeOfTest, timeOfResults)
	} else {
		t.states.SetWaitingForTestInCar(a, timeOfTest, timeOfResults)
	}
	_ = pop.WithdrawFromPublicPlaces(a)
}

// Exposed applies the exposed-to-symptomatic-or-removed transition,
// including the testing sub-transitions due this step.
func (t *Regular) Exposed(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) (ExposedResult, error) {
	if err := t.advanceTesting(pop, a, now, r); err != nil {
		return ExposedResult{}, err
	}

	if now < a.LatencyEndTime() {
		return ExposedResult{}, nil
	}

	if a.RecoveringExposed() {
		t.states.SetExposedNeverSymptomaticToRemoved(a)
		return ExposedResult{RecoveredWithoutSymptoms: true}, nil
	}

	t.states.SetExposedToSymptomatic(a)
	if !a.TestedExposed() || a.TestedFalseNegative() {
		t.scheduleTest(pop, a, now, r)
	}

	willDie, err := t.sampler.WillDieNonICU(r, a.Age())
	if err != nil {
		return ExposedResult{}, err
	}
	if willDie {
		t.states.SetDyingSymptomatic(a)
		a.SetOnsetToDeathDuration(t.sampler.OnsetToDeath(r))
		a.SetDeathTime(now)
	} else {
		t.states.SetRecoveringSymptomatic(a)
		a.SetRecoveryDuration(t.params.RecoveryTime)
		a.SetRecoveryTime(now)
	}

	if a.TestedCovidPositive() {
		if err := t.selectTreatment(pop, a, now, r); err != nil {
			return ExposedResult{}, err
		}
	}
	checkImpossibleState(a)
	return ExposedResult{}, nil
}

// advanceTesting runs the testing-phase sub-transitions shared by the
// exposed and symptomatic steps: test-due -> awaiting results, and
// results-due -> false-negative or true-positive. A true positive that
// resolves while the agent is already symptomatic triggers treatment
// selection immediately here, since Exposed's own post-transition
// selectTreatment call only ever fires for an agent that tested positive
// before symptom onset -- the majority of agents, which go untested until
// scheduleTest fires at onset, would otherwise never draw hospitalization
// or ICU at all.
func (t *Regular) advanceTesting(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) error {
	if a.TestedAwaitingTest() && now >= a.TimeOfTest() {
		if a.Exposed() {
			t.states.SetExposedWaitingForResults(a)
		} else {
			t.states.SetTestedToAwaitingResults(a)
		}
	}
	if a.TestedAwaitingResults() && now >= a.TimeOfResults() {
		if t.sampler.FalseNegativeTestResult(r, t.params.FractionFalseNegative) {
			t.states.SetTestedFalseNegative(a)
			if err := pop.RestoreToPublicPlaces(a); err != nil {
				return err
			}
		} else {
			t.states.SetTestedCovidPositive(a)
			if a.Symptomatic() {
				if err := t.selectTreatment(pop, a, now, r); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// selectTreatment implements the treatment-selection sub-machine: home
// isolation vs. hospital admission vs. ICU escalation, and the scheduled
// times that later move the agent between IH/HSP/ICU.
func (t *Regular) selectTreatment(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) error {
	hospitalized, err := t.sampler.AgentHospitalized(r, a.Age())
	if err != nil {
		return err
	}
	if !hospitalized {
		t.states.SetHomeIsolation(a)
		if a.Dying() {
			a.SetIHtoICUTime(a.TimeOfDeath() - t.params.TimeBeforeDeathToICU)
			return nil
		}
		oth, err := t.sampler.OnsetToHospitalization(r)
		if err != nil {
			return err
		}
		hospTime := now + oth
		if hospTime < a.RecoveryTime() {
			a.SetIHtoHSPTime(hospTime)
		}
		return nil
	}

	if err := pop.RemoveFromAllPlaces(a); err != nil {
		return err
	}
	n := len(pop.Hospitals)
	hid, err := t.sampler.RandomHospitalID(r, n)
	if err != nil {
		return err
	}
	if err := pop.AdmitToHospital(a, hid); err != nil {
		return err
	}
	t.states.SetHospitalized(a, hid)

	icu, err := t.sampler.AgentHospitalizedICU(r, a.Age())
	if err != nil {
		return err
	}
	if !icu {
		if a.Dying() {
			a.SetHSPtoICUTime(a.TimeOfDeath() - t.params.TimeBeforeDeathToICU)
		} else {
			a.SetHSPtoIHTime(now + t.params.TimeInHospital)
		}
		return nil
	}

	if a.Dying() && t.sampler.WillDieICU(r) {
		t.states.SetICUDying(a)
		a.SetOnsetToDeathDuration(t.sampler.OnsetToDeath(r))
		a.SetDeathTime(now)
		return nil
	}

	t.states.SetICURecovering(a)
	recovery := t.params.TimeInICU + t.params.TimeInHospitalAfterICU
	a.SetRecoveryDuration(recovery)
	a.SetRecoveryTime(now)
	a.SetICUtoHSPTime(now + t.params.TimeInICU)
	a.SetHSPtoIHTime(now + recovery)
	return nil
}

// Symptomatic applies the symptomatic step: removal check, testing
// sub-transitions, and treatment-path progression.
func (t *Regular) Symptomatic(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) (SymptomaticResult, error) {
	if a.Dying() && now >= a.TimeOfDeath() {
		if err := pop.RemoveFromAllPlaces(a); err != nil {
			return SymptomaticResult{}, err
		}
		t.states.SetAnyToRemoved(a)
		return SymptomaticResult{Died: true}, nil
	}
	if a.Recovering() && now >= a.RecoveryTime() {
		if err := pop.AddToAllPlaces(a); err != nil {
			return SymptomaticResult{}, err
		}
		t.states.SetAnyToRemoved(a)
		return SymptomaticResult{Recovered: true}, nil
	}

	if a.TestedFalseNegative() {
		return SymptomaticResult{}, nil
	}

	if err := t.advanceTesting(pop, a, now, r); err != nil {
		return SymptomaticResult{}, err
	}

	if err := t.progressTreatment(pop, a, now, r); err != nil {
		return SymptomaticResult{}, err
	}
	checkImpossibleState(a)
	return SymptomaticResult{}, nil
}

// progressTreatment performs at most one due treatment-path move: ICU to
// general ward, general ward to ICU, general ward to home, or home to
// general ward/ICU. In a population with no hospitals, home-isolated agents
// stay home.
func (t *Regular) progressTreatment(pop *model.Population, a *model.Agent, now float64, r *rand.Rand) error {
	switch {
	case a.HospitalizedICU() && a.Recovering() && now >= a.ICUtoHSPTime():
		t.states.LeaveICUToHospital(a)
		return nil

	case a.HospitalizedICU() && a.Dying() && now >= a.HSPtoICUTime():
		// Already in ICU and dying: death is handled by the removal check.
		return nil

	case a.Hospitalized() && !a.HospitalizedICU() && a.Dying() && now >= a.HSPtoICUTime():
		t.states.SetICUDying(a)
		return nil

	case a.Hospitalized() && !a.HospitalizedICU() && a.Recovering() && now >= a.HSPtoIHTime():
		if err := pop.DischargeFromHospital(a); err != nil {
			return err
		}
		a.SetHospitalID(0)
		return nil

	case a.HomeIsolated() && a.Dying() && now >= a.IHtoICUTime() && len(pop.Hospitals) > 0:
		n := len(pop.Hospitals)
		hid, err := t.sampler.RandomHospitalID(r, n)
		if err != nil {
			return err
		}
		if err := pop.AdmitToHospital(a, hid); err != nil {
			return err
		}
		t.states.SetHospitalized(a, hid)
		t.states.SetICUDying(a)
		return nil

	case a.HomeIsolated() && a.Recovering() && a.IHtoHSPTime() > 0 && now >= a.IHtoHSPTime() && len(pop.Hospitals) > 0:
		if now >= a.RecoveryTime() {
			// Recovered before the scheduled admission fired: skip it.
			a.ClearTreatmentTimes()
			return nil
		}
		n := len(pop.Hospitals)
		hid, err := t.sampler.RandomHospitalID(r, n)
		if err != nil {
			return err
		}
		if err := pop.AdmitToHospital(a, hid); err != nil {
			return err
		}
		t.states.SetHospitalized(a, hid)
		a.SetHSPtoIHTime(now + t.params.TimeInHospital)
		return nil
	}
	return nil
}

// checkImpossibleState enforces the state-combination invariants no single
// branch above is responsible for maintaining on its own: an agent must
// never be both home-isolated and hospitalized, ICU care always implies
// general-ward hospitalization, and dying/recovering are mutually
// exclusive. Called at the end of every transition entry point, since a
// bug in any branch above would otherwise surface only as a silently wrong
// contribution or roster on a later step.
func checkImpossibleState(a *model.Agent) {
	if a.HomeIsolated() && a.Hospitalized() {
		simerr.Panic("agent %d is both home-isolated and hospitalized", a.ID())
	}
	if a.HospitalizedICU() && !a.Hospitalized() {
		simerr.Panic("agent %d is in ICU without being hospitalized", a.ID())
	}
	if a.Dying() && a.Recovering() {
		simerr.Panic("agent %d is both dying and recovering", a.ID())
	}
}
