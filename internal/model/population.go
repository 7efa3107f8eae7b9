package model

import "github.com/Kylepayen02/ABM-COVID/internal/simerr"

// Population indexes every Agent and Place by ID and provides the
// membership-roster operations Transitions needs when an agent moves
// between isolation, hospitalization, and normal circulation. IDs are
// 1-based; index (ID-1) is used for O(1) lookup, following the ID-1 indexing convention used throughout.
type Population struct {
	Agents     []*Agent
	Households []*Household
	Schools    []*School
	Workplaces []*Workplace
	Hospitals  []*Hospital
}

// NewPopulation builds an empty Population; every slice starts nil.
func NewPopulation() *Population {
	return &Population{}
}

func outOfRange(kind string, id, n int) error {
	return simerr.New(simerr.OutOfRange, "%s ID %d out of range [1,%d]", kind, id, n)
}

// AgentByID returns the agent with the given 1-based ID.
func (p *Population) AgentByID(id int) (*Agent, error) {
	if id < 1 || id > len(p.Agents) {
		return nil, outOfRange("agent", id, len(p.Agents))
	}
	return p.Agents[id-1], nil
}

// HouseholdByID returns the household with the given 1-based ID.
func (p *Population) HouseholdByID(id int) (*Household, error) {
	if id < 1 || id > len(p.Households) {
		return nil, outOfRange("household", id, len(p.Households))
	}
	return p.Households[id-1], nil
}

// SchoolByID returns the school with the given 1-based ID.
func (p *Population) SchoolByID(id int) (*School, error) {
	if id < 1 || id > len(p.Schools) {
		return nil, outOfRange("school", id, len(p.Schools))
	}
	return p.Schools[id-1], nil
}

// WorkplaceByID returns the workplace with the given 1-based ID.
func (p *Population) WorkplaceByID(id int) (*Workplace, error) {
	if id < 1 || id > len(p.Workplaces) {
		return nil, outOfRange("workplace", id, len(p.Workplaces))
	}
	return p.Workplaces[id-1], nil
}

// HospitalByID returns the hospital with the given 1-based ID.
func (p *Population) HospitalByID(id int) (*Hospital, error) {
	if id < 1 || id > len(p.Hospitals) {
		return nil, outOfRange("hospital", id, len(p.Hospitals))
	}
	return p.Hospitals[id-1], nil
}

// WithdrawFromPublicPlaces removes an agent from its school and workplace
// (and hospital, if a hospital employee) rosters, leaving household
// membership untouched -- isolation never removes an agent from its own
// home. Grounded on the original source's
// remove_from_all_workplaces_and_schools, generalized to include the
// hospital-employee case this spec's superset adds.
func (p *Population) WithdrawFromPublicPlaces(a *Agent) error {
	if a.SchoolID() > 0 {
		s, err := p.SchoolByID(a.SchoolID())
		if err != nil {
			return err
		}
		s.Remove(a.ID())
	}
	if a.WorkID() > 0 {
		w, err := p.WorkplaceByID(a.WorkID())
		if err != nil {
			return err
		}
		w.Remove(a.ID())
	}
	if a.HospitalEmployee() && a.HospitalID() > 0 {
		h, err := p.HospitalByID(a.HospitalID())
		if err != nil {
			return err
		}
		h.Remove(a.ID())
	}
	return nil
}

// RestoreToPublicPlaces is the inverse of WithdrawFromPublicPlaces: it adds
// the agent back to its school/workplace/hospital-employee roster.
func (p *Population) RestoreToPublicPlaces(a *Agent) error {
	if a.SchoolID() > 0 {
		s, err := p.SchoolByID(a.SchoolID())
		if err != nil {
			return err
		}
		s.Add(a.ID())
	}
	if a.WorkID() > 0 {
		w, err := p.WorkplaceByID(a.WorkID())
		if err != nil {
			return err
		}
		w.Add(a.ID())
	}
	if a.HospitalEmployee() && a.HospitalID() > 0 {
		h, err := p.HospitalByID(a.HospitalID())
		if err != nil {
			return err
		}
		h.Add(a.ID())
	}
	return nil
}

// RemoveFromAllPlaces removes the agent from every roster it belongs to,
// including its household and, for a currently admitted hospital patient,
// its hospital. Used on hospital admission (the agent physically leaves
// home) and on final removal by death.
func (p *Population) RemoveFromAllPlaces(a *Agent) error {
	if err := p.WithdrawFromPublicPlaces(a); err != nil {
		return err
	}
	if a.HospitalID() > 0 && !a.HospitalEmployee() {
		h, err := p.HospitalByID(a.HospitalID())
		if err != nil {
			return err
		}
		h.Remove(a.ID())
	}
	if a.HouseholdID() > 0 {
		h, err := p.HouseholdByID(a.HouseholdID())
		if err != nil {
			return err
		}
		h.Remove(a.ID())
	}
	return nil
}

// AddToAllPlaces re-adds the agent to every roster it belongs to,
// including its household. Used on hospital discharge back to IH.
func (p *Population) AddToAllPlaces(a *Agent) error {
	if err := p.RestoreToPublicPlaces(a); err != nil {
		return err
	}
	if a.HouseholdID() > 0 {
		h, err := p.HouseholdByID(a.HouseholdID())
		if err != nil {
			return err
		}
		h.Add(a.ID())
	}
	return nil
}

// AdmitToHospital removes the agent from home/public rosters and adds it
// to the given hospital's roster, recording the hospital ID on the agent.
func (p *Population) AdmitToHospital(a *Agent, hospitalID int) error {
	if err := p.RemoveFromAllPlaces(a); err != nil {
		return err
	}
	h, err := p.HospitalByID(hospitalID)
	if err != nil {
		return err
	}
	h.Add(a.ID())
	a.SetHospitalID(hospitalID)
	return nil
}

// DischargeFromHospital removes the agent from its current hospital's
// roster and re-adds it to household/public rosters.
func (p *Population) DischargeFromHospital(a *Agent) error {
	if a.HospitalID() > 0 && !a.HospitalEmployee() {
		h, err := p.HospitalByID(a.HospitalID())
		if err != nil {
			return err
		}
		h.Remove(a.ID())
		a.SetHospitalID(0)
	}
	return p.AddToAllPlaces(a)
}
