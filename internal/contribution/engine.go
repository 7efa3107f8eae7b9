// Package contribution translates "who is infectious" into "which places
// accumulate what" for one simulation step. It is the one place that reads
// every place kind an agent might belong to and calls the matching Add*
// method; internal/transitions never touches place accumulators directly.
package contribution

import (
	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// Engine walks a Population once per step and dispatches each non-removed,
// non-susceptible agent's contribution to its associated places.
type Engine struct{}

// NewEngine returns a ready-to-use Engine. It carries no state: every
// method takes the Population and current time explicitly.
func NewEngine() *Engine { return &Engine{} }

// Step runs one full contribution pass: dispatch every agent, then
// finalize every place's accumulated sum into a pressure scalar. It does
// not clear the accumulators; Reset does that as a separate call.
func (e *Engine) Step(pop *model.Population, now float64) error {
	for _, a := range pop.Agents {
		if err := e.dispatch(pop, a, now); err != nil {
			return err
		}
	}
	e.finalizeAll(pop)
	return nil
}

// Reset zeroes every place's accumulator and derived pressure. Called
// after transitions have read the finalized lambdas for the step.
func (e *Engine) Reset(pop *model.Population) {
	for _, h := range pop.Households {
		h.Reset()
	}
	for _, s := range pop.Schools {
		s.Reset()
	}
	for _, w := range pop.Workplaces {
		w.Reset()
	}
	for _, h := range pop.Hospitals {
		h.Reset()
	}
}

func (e *Engine) finalizeAll(pop *model.Population) {
	for _, h := range pop.Households {
		h.Finalize()
	}
	for _, s := range pop.Schools {
		s.Finalize()
	}
	for _, w := range pop.Workplaces {
		w.Finalize()
	}
	for _, h := range pop.Hospitals {
		h.Finalize()
	}
}

func (e *Engine) dispatch(pop *model.Population, a *model.Agent, now float64) error {
	if a.Removed() || a.Susceptible() {
		return nil
	}
	switch {
	case a.Exposed() && now >= a.InfectiousnessStartTime():
		return e.computeExposedContributions(pop, a)
	case a.Symptomatic():
		return e.computeSymptomaticContributions(pop, a)
	case a.Exposed():
		// Exposed but not yet infectious: no contribution this step.
		return nil
	default:
		simerr.Panic("agent %d is infected but neither exposed nor symptomatic", a.ID())
		return nil
	}
}

func (e *Engine) household(pop *model.Population, id int) (*model.Household, error) {
	return pop.HouseholdByID(id)
}

func (e *Engine) school(pop *model.Population, id int) (*model.School, error) {
	return pop.SchoolByID(id)
}

func (e *Engine) workplace(pop *model.Population, id int) (*model.Workplace, error) {
	return pop.WorkplaceByID(id)
}

func (e *Engine) hospital(pop *model.Population, id int) (*model.Hospital, error) {
	return pop.HospitalByID(id)
}

// computeExposedContributions implements the exposed dispatch table from
// the contribution engine's algorithm: untested/uncontained agents
// contribute to every place they belong to; testing and isolation narrow
// that set; a covid-positive result confines the contribution to the
// home-isolated household channel.
func (e *Engine) computeExposedContributions(pop *model.Population, a *model.Agent) error {
	v := a.InfectiousnessVariability()

	switch {
	case a.TestedAwaitingTest() && a.TestedInHospital() && a.HospitalID() > 0:
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddTested(v)
		return nil

	case a.TestedAwaitingTest() && a.TestedInCar():
		return nil

	case a.TestedAwaitingResults() || (a.TestedAwaitingTest() && !a.Hospitalized()):
		return e.addExposedIsolated(pop, a, v)

	case a.HospitalNonCovidPatient() && !a.Tested():
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddExposedPatient(v)
		return nil

	case a.TestedCovidPositive():
		return e.addExposedIsolated(pop, a, v)

	default:
		return e.addExposedNormal(pop, a, v)
	}
}

// addExposedNormal adds the untested, uncontained exposed contribution to
// every place the agent normally belongs to.
func (e *Engine) addExposedNormal(pop *model.Population, a *model.Agent, v float64) error {
	if a.HouseholdID() > 0 {
		h, err := e.household(pop, a.HouseholdID())
		if err != nil {
			return err
		}
		h.AddExposed(v)
	}
	if a.Student() && a.SchoolID() > 0 {
		s, err := e.school(pop, a.SchoolID())
		if err != nil {
			return err
		}
		s.AddExposedStudent(v)
	}
	if a.WorksAtSchool() && a.SchoolID() > 0 {
		s, err := e.school(pop, a.SchoolID())
		if err != nil {
			return err
		}
		s.AddExposedEmployee(v)
	} else if a.Working() && a.WorkID() > 0 {
		w, err := e.workplace(pop, a.WorkID())
		if err != nil {
			return err
		}
		w.AddExposed(v)
	}
	if a.HospitalEmployee() && a.HospitalID() > 0 {
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddExposedEmployee(v)
	}
	return nil
}

// addExposedIsolated adds the home-isolated exposed contribution: only the
// household sees a (reduced-rate) contribution.
func (e *Engine) addExposedIsolated(pop *model.Population, a *model.Agent, v float64) error {
	if a.HouseholdID() <= 0 {
		return nil
	}
	h, err := e.household(pop, a.HouseholdID())
	if err != nil {
		return err
	}
	h.AddExposedHomeIsolated(v)
	return nil
}

// computeSymptomaticContributions implements the symptomatic dispatch
// table: the same shape as exposed, plus the hospitalized/ICU treatment
// branches which route to hospital contribution instead of household.
func (e *Engine) computeSymptomaticContributions(pop *model.Population, a *model.Agent) error {
	v := a.InfectiousnessVariability()

	switch {
	case a.HospitalizedICU():
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddHospitalizedICU(v)
		return nil

	case a.Hospitalized():
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddHospitalized(v)
		return nil

	case a.TestedAwaitingTest() && a.TestedInHospital() && a.HospitalID() > 0:
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddTested(v)
		return nil

	case a.TestedAwaitingTest() && a.TestedInCar():
		return nil

	case a.HomeIsolated():
		return e.addSymptomaticIsolated(pop, a, v)

	case a.HospitalNonCovidPatient() && !a.Tested():
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddSymptomaticPatient(v)
		return nil

	default:
		return e.addSymptomaticNormal(pop, a, v)
	}
}

func (e *Engine) addSymptomaticNormal(pop *model.Population, a *model.Agent, v float64) error {
	if a.HouseholdID() > 0 {
		h, err := e.household(pop, a.HouseholdID())
		if err != nil {
			return err
		}
		h.AddSymptomatic(v)
	}
	if a.Student() && a.SchoolID() > 0 {
		s, err := e.school(pop, a.SchoolID())
		if err != nil {
			return err
		}
		s.AddSymptomaticStudent(v)
	}
	if a.WorksAtSchool() && a.SchoolID() > 0 {
		s, err := e.school(pop, a.SchoolID())
		if err != nil {
			return err
		}
		s.AddSymptomaticEmployee(v)
	} else if a.Working() && a.WorkID() > 0 {
		w, err := e.workplace(pop, a.WorkID())
		if err != nil {
			return err
		}
		w.AddSymptomatic(v)
	}
	if a.HospitalEmployee() && a.HospitalID() > 0 {
		h, err := e.hospital(pop, a.HospitalID())
		if err != nil {
			return err
		}
		h.AddSymptomaticEmployee(v)
	}
	return nil
}

func (e *Engine) addSymptomaticIsolated(pop *model.Population, a *model.Agent, v float64) error {
	if a.HouseholdID() <= 0 {
		return nil
	}
	h, err := e.household(pop, a.HouseholdID())
	if err != nil {
		return err
	}
	h.AddSymptomaticHomeIsolated(v)
	return nil
}
