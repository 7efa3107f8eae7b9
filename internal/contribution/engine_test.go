package contribution

import (
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/model"
)

func newFixture() (*model.Population, *model.Agent, *model.StatesManager) {
	pop := model.NewPopulation()
	pop.Households = append(pop.Households, model.NewHousehold(1, 0, 0, 1.0, 0.4, 0.8, 0.1))
	pop.Schools = append(pop.Schools, model.NewSchool(1, 0, 0, 1.0, model.Primary, 0.2, 0.2, 0.9))
	pop.Workplaces = append(pop.Workplaces, model.NewWorkplace(1, 0, 0, 1.0, 0.3, 0.9))
	pop.Hospitals = append(pop.Hospitals, model.NewHospital(1, 0, 0, 1.0, 0.2, 0.2, 0.1, 0.3, 0.4))

	a := model.NewAgent(1, 10, true, false, 0, 0, 1, 1, 0, 0, false, false, false)
	a.SetInfVar(2.0)
	pop.Agents = append(pop.Agents, a)
	pop.Households[0].Register(a.ID(), false)
	pop.Schools[0].Register(a.ID(), false)

	return pop, a, model.NewStatesManager()
}

func TestDispatchSkipsSusceptibleAndRemovedAgents(t *testing.T) {
	pop, a, _ := newFixture()
	eng := NewEngine()

	if err := eng.Step(pop, 0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() != 0 {
		t.Fatalf("susceptible agent should not contribute, lambda = %g", pop.Households[0].Lambda())
	}

	states := model.NewStatesManager()
	states.SetAnyToRemoved(a)
	eng.Reset(pop)
	if err := eng.Step(pop, 0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() != 0 {
		t.Fatalf("removed agent should not contribute, lambda = %g", pop.Households[0].Lambda())
	}
}

func TestDispatchExposedNotYetInfectiousContributesNothing(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(5.0)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() != 0 {
		t.Fatalf("pre-infectious exposed agent should not contribute, lambda = %g", pop.Households[0].Lambda())
	}
}

func TestDispatchExposedNormalContributesToHouseholdAndSchool(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(0)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() <= 0 {
		t.Fatal("expected a positive household lambda for a normal exposed contribution")
	}
	if pop.Schools[0].Lambda() <= 0 {
		t.Fatal("expected a positive school lambda for an exposed student")
	}
}

func TestDispatchExposedIsolatedOnlyContributesToHousehold(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(0)
	states.SetTestedCovidPositive(a)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Schools[0].Lambda() != 0 {
		t.Fatalf("isolated exposed agent should not contribute to school, lambda = %g", pop.Schools[0].Lambda())
	}
	wantIsolated := a.InfectiousnessVariability() * 0.1
	if got := pop.Households[0].Lambda(); got != wantIsolated {
		t.Fatalf("isolated household lambda = %g, want %g", got, wantIsolated)
	}
}

func TestDispatchExposedAwaitingTestInCarContributesNothing(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(0)
	states.SetWaitingForTestInCar(a, 1.0, 3.0)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() != 0 || pop.Schools[0].Lambda() != 0 {
		t.Fatal("agent awaiting a drive-through test should contribute nowhere")
	}
}

func TestDispatchSymptomaticHospitalizedICUGoesToHospitalOnly(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	states.SetExposedToSymptomatic(a)
	states.SetHospitalized(a, 1)
	states.SetICUDying(a)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() != 0 {
		t.Fatal("ICU patient should not contribute to household")
	}
	if pop.Hospitals[0].Lambda() <= 0 {
		t.Fatal("expected a positive hospital lambda for an ICU patient")
	}
}

func TestDispatchHospitalNonCovidPatientContributesAsPatient(t *testing.T) {
	pop := model.NewPopulation()
	pop.Hospitals = append(pop.Hospitals, model.NewHospital(1, 0, 0, 1.0, 0.2, 0.25, 0.1, 0.3, 0.4))
	a := model.NewAgent(1, 60, false, false, 0, 0, 0, 0, 0, 1, false, false, true)
	a.SetInfVar(1.0)
	pop.Agents = append(pop.Agents, a)
	pop.Hospitals[0].Register(a.ID(), false)

	states := model.NewStatesManager()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(0)

	eng := NewEngine()
	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Hospitals[0].Lambda() <= 0 {
		t.Fatal("expected a positive hospital lambda for a non-covid exposed patient")
	}
}

func TestResetZeroesAllPlaceAccumulators(t *testing.T) {
	pop, a, states := newFixture()
	states.SetSusceptibleToExposed(a)
	a.SetInfectiousnessStartTime(0)
	eng := NewEngine()

	if err := eng.Step(pop, 1.0); err != nil {
		t.Fatal(err)
	}
	if pop.Households[0].Lambda() <= 0 {
		t.Fatal("expected a nonzero lambda before reset")
	}
	eng.Reset(pop)
	if pop.Households[0].Lambda() != 0 {
		t.Fatalf("lambda after reset = %g, want 0", pop.Households[0].Lambda())
	}
}
