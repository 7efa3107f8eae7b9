package transitions

import (
	"math/rand"
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/model"
)

func testParams() Params {
	return Params{
		FractionExposedTested:       0.1,
		FractionTestedInHospital:    0.5,
		FractionFalseNegative:       0.1,
		FractionFalsePositive:       0.02,
		TimeExposedToInfectiousness: 2.0,
		TimeDecisionToTest:          1.0,
		TimeTestToResults:           2.0,
		RecoveryTime:                10.0,
		TimeInICU:                   7.0,
		TimeInHospital:              5.0,
		TimeInHospitalAfterICU:      4.0,
		TimeBeforeDeathToICU:        2.0,
	}
}

func testSampler(t *testing.T) *infection.Sampler {
	t.Helper()
	mortality, err := infection.NewAgeTable([]infection.AgeBand{{Lo: 0, Hi: 120, P: 1.0}})
	if err != nil {
		t.Fatal(err)
	}
	hosp, err := infection.NewAgeTable([]infection.AgeBand{{Lo: 0, Hi: 120, P: 1.0}})
	if err != nil {
		t.Fatal(err)
	}
	icu, err := infection.NewAgeTable([]infection.AgeBand{{Lo: 0, Hi: 120, P: 0.0}})
	if err != nil {
		t.Fatal(err)
	}
	s, err := infection.NewSampler(infection.Params{
		LatencyLognMean: 0.5, LatencyLognStd: 0.2,
		VariabilityGammaShape: 2.0, VariabilityGammaScale: 1.0,
		OnsetToDeathLognMean: 1.0, OnsetToDeathLognStd: 0.2,
		OnsetToHospGammaShape: 2.0, OnsetToHospGammaScale: 1.0,
		HospToDeathWblShape: 2.0, HospToDeathWblScale: 3.0,
		ProbRecoveringExposed: 0.0, ProbDeathICU: 1.0,
	}, mortality, hosp, icu)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func testWorld(t *testing.T) (*model.Population, *model.Agent) {
	t.Helper()
	pop := model.NewPopulation()
	pop.Households = append(pop.Households, model.NewHousehold(1, 0, 0, 1.0, 0.5, 0.8, 0.1))
	pop.Schools = append(pop.Schools, model.NewSchool(1, 0, 0, 1.0, model.Primary, 0.3, 0.3, 0.9))
	pop.Workplaces = append(pop.Workplaces, model.NewWorkplace(1, 0, 0, 1.0, 0.3, 0.9))
	pop.Hospitals = append(pop.Hospitals, model.NewHospital(1, 0, 0, 1.0, 0.2, 0.2, 0.1, 0.3, 0.4))

	a := model.NewAgent(1, 30, false, true, 0, 0, 1, 0, 1, 0, false, false, false)
	pop.Agents = append(pop.Agents, a)
	pop.Households[0].Register(a.ID(), false)
	pop.Workplaces[0].Register(a.ID(), false)
	return pop, a
}

func TestSusceptibleLambdaSumsHouseholdAndWorkplace(t *testing.T) {
	pop, a := testWorld(t)
	pop.Households[0].AddExposed(1.0)
	pop.Households[0].Finalize()
	pop.Workplaces[0].AddExposed(1.0)
	pop.Workplaces[0].Finalize()

	reg := New(testParams(), testSampler(t), model.NewStatesManager())
	lambda, err := reg.SusceptibleLambda(pop, a)
	if err != nil {
		t.Fatal(err)
	}
	want := pop.Households[0].Lambda() + pop.Workplaces[0].Lambda()
	if lambda != want {
		t.Fatalf("lambda = %g, want %g", lambda, want)
	}
}

func TestSusceptibleWithZeroLambdaNeverInfects(t *testing.T) {
	pop, a := testWorld(t)
	reg := New(testParams(), testSampler(t), model.NewStatesManager())
	r := rand.New(rand.NewSource(1))

	res, err := reg.Susceptible(pop, a, 0, 1.0, r)
	if err != nil {
		t.Fatal(err)
	}
	if res.Infected {
		t.Fatal("agent should not be infected with zero ambient lambda")
	}
	if !a.Susceptible() {
		t.Fatal("agent should remain susceptible")
	}
}

func TestSusceptibleInfectionSchedulesLatencyAndInfectiousness(t *testing.T) {
	pop, a := testWorld(t)
	pop.Households[0].AddExposed(50.0)
	pop.Households[0].Finalize()

	reg := New(testParams(), testSampler(t), model.NewStatesManager())
	r := rand.New(rand.NewSource(2))

	res, err := reg.Susceptible(pop, a, 0, 1.0, r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Infected {
		t.Fatal("expected infection with strongly positive lambda")
	}
	if !a.Exposed() {
		t.Fatal("agent should be exposed after infection")
	}
	if a.LatencyEndTime() <= 0 {
		t.Fatal("expected a positive latency end time")
	}
	if a.InfectiousnessStartTime() > a.LatencyEndTime() {
		t.Fatal("infectiousness should never start after latency ends")
	}
}

func TestExposedRecoveringWithoutSymptomsIsRemoved(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposedNeverSymptomatic(a)
	a.SetLatencyDuration(1.0)
	a.SetLatencyEndTime(0)
	a.SetInfectiousnessStartTime(0)

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(3))

	res, err := reg.Exposed(pop, a, 5.0, r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.RecoveredWithoutSymptoms {
		t.Fatal("expected recovery without symptoms")
	}
	if !a.Removed() {
		t.Fatal("agent should be removed")
	}
}

func TestExposedBeforeLatencyEndDoesNothing(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	a.SetLatencyDuration(10.0)
	a.SetLatencyEndTime(0)
	a.SetInfectiousnessStartTime(0)

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(4))

	if _, err := reg.Exposed(pop, a, 1.0, r); err != nil {
		t.Fatal(err)
	}
	if !a.Exposed() {
		t.Fatal("agent should still be exposed before latency ends")
	}
}

func TestExposedPastLatencyBecomesSymptomaticAndDrawsOutcome(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	a.SetLatencyDuration(1.0)
	a.SetLatencyEndTime(0)
	a.SetInfectiousnessStartTime(0)

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(5))

	if _, err := reg.Exposed(pop, a, 5.0, r); err != nil {
		t.Fatal(err)
	}
	if !a.Symptomatic() {
		t.Fatal("agent should become symptomatic once latency has elapsed")
	}
	if !a.Dying() && !a.Recovering() {
		t.Fatal("symptomatic agent must be marked as either dying or recovering")
	}
}

func TestSymptomaticRemovesOnDeathTime(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	states.SetExposedToSymptomatic(a)
	states.SetDyingSymptomatic(a)
	a.SetOnsetToDeathDuration(1.0)
	a.SetDeathTime(0)

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(6))

	res, err := reg.Symptomatic(pop, a, 5.0, r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Died {
		t.Fatal("expected the agent to die once past its death time")
	}
	if !a.Removed() {
		t.Fatal("agent should be removed after death")
	}
	if len(pop.Households[0].Members()) != 0 {
		t.Fatal("household roster should no longer include the deceased agent")
	}
}

func TestSymptomaticRecoversAndReturnsToPlaces(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	states.SetExposedToSymptomatic(a)
	states.SetRecoveringSymptomatic(a)
	a.SetRecoveryDuration(1.0)
	a.SetRecoveryTime(0)
	if err := pop.RemoveFromAllPlaces(a); err != nil {
		t.Fatal(err)
	}

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(7))

	res, err := reg.Symptomatic(pop, a, 5.0, r)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Recovered {
		t.Fatal("expected recovery once past recovery time")
	}
	if !a.Removed() {
		t.Fatal("agent should be marked removed after recovery")
	}
	if len(pop.Households[0].Members()) != 1 {
		t.Fatal("household roster should regain the recovered agent")
	}
}

func TestSymptomaticPositiveResultTriggersTreatmentSelection(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	states.SetExposedToSymptomatic(a)
	states.SetRecoveringSymptomatic(a)
	a.SetRecoveryDuration(100.0)
	a.SetRecoveryTime(0)
	states.SetWaitingForTestInCar(a, 0.0, 1.0)

	params := testParams()
	params.FractionFalseNegative = 0.0
	reg := New(params, testSampler(t), states)
	r := rand.New(rand.NewSource(9))

	if _, err := reg.Symptomatic(pop, a, 1.0, r); err != nil {
		t.Fatal(err)
	}
	if !a.TestedCovidPositive() {
		t.Fatal("a zero false-negative rate should always resolve to a positive result")
	}
	if !a.Hospitalized() {
		t.Fatal("a positive result reached during the symptomatic phase must still run treatment selection")
	}
}

func TestSymptomaticFalseNegativeShortCircuitsTreatmentProgression(t *testing.T) {
	pop, a := testWorld(t)
	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	states.SetExposedToSymptomatic(a)
	states.SetRecoveringSymptomatic(a)
	a.SetRecoveryDuration(100.0)
	a.SetRecoveryTime(0)
	states.SetTestedFalseNegative(a)

	reg := New(testParams(), testSampler(t), states)
	r := rand.New(rand.NewSource(8))

	if _, err := reg.Symptomatic(pop, a, 1.0, r); err != nil {
		t.Fatal(err)
	}
	if a.Hospitalized() || a.HomeIsolated() {
		t.Fatal("a false-negative agent should not enter treatment selection")
	}
}
