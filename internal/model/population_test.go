package model

import (
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

func newTestPopulation() (*Population, *Agent) {
	pop := NewPopulation()
	pop.Households = append(pop.Households, NewHousehold(1, 0, 0, 1.0, 0.5, 0.8, 0.1))
	pop.Schools = append(pop.Schools, NewSchool(1, 0, 0, 1.0, Primary, 0.3, 0.3, 0.9))
	pop.Workplaces = append(pop.Workplaces, NewWorkplace(1, 0, 0, 1.0, 0.3, 0.9))
	pop.Hospitals = append(pop.Hospitals, NewHospital(1, 0, 0, 1.0, 0.2, 0.2, 0.1, 0.3, 0.4))

	a := NewAgent(1, 30, false, true, 0, 0, 1, 1, 1, 0, false, false, false)
	pop.Agents = append(pop.Agents, a)
	pop.Households[0].Register(a.ID(), false)
	pop.Schools[0].Register(a.ID(), false)
	pop.Workplaces[0].Register(a.ID(), false)
	return pop, a
}

func TestHouseholdByIDOutOfRange(t *testing.T) {
	pop, _ := newTestPopulation()
	if _, err := pop.HouseholdByID(2); !simerr.Is(err, simerr.OutOfRange) {
		t.Fatalf("err = %v, want OutOfRange", err)
	}
	if _, err := pop.HouseholdByID(0); !simerr.Is(err, simerr.OutOfRange) {
		t.Fatalf("err = %v, want OutOfRange", err)
	}
}

func TestWithdrawAndRestorePublicPlacesLeavesHouseholdAlone(t *testing.T) {
	pop, a := newTestPopulation()

	if err := pop.WithdrawFromPublicPlaces(a); err != nil {
		t.Fatal(err)
	}
	if len(pop.Workplaces[0].Members()) != 0 {
		t.Fatal("workplace roster should be empty after withdrawal")
	}
	if len(pop.Households[0].Members()) != 1 {
		t.Fatal("household roster should be untouched by public-place withdrawal")
	}

	if err := pop.RestoreToPublicPlaces(a); err != nil {
		t.Fatal(err)
	}
	if len(pop.Workplaces[0].Members()) != 1 {
		t.Fatal("workplace roster should be restored")
	}
}

func TestAdmitAndDischargeFromHospital(t *testing.T) {
	pop, a := newTestPopulation()

	if err := pop.AdmitToHospital(a, 1); err != nil {
		t.Fatal(err)
	}
	if len(pop.Households[0].Members()) != 0 {
		t.Fatal("household roster should be empty once hospitalized")
	}
	if len(pop.Hospitals[0].Members()) != 1 {
		t.Fatal("hospital roster should gain the admitted agent")
	}
	if a.HospitalID() != 1 {
		t.Fatalf("agent hospital ID = %d, want 1", a.HospitalID())
	}

	if err := pop.DischargeFromHospital(a); err != nil {
		t.Fatal(err)
	}
	if len(pop.Hospitals[0].Members()) != 0 {
		t.Fatal("hospital roster should be empty after discharge")
	}
	if len(pop.Households[0].Members()) != 1 {
		t.Fatal("household roster should regain the discharged agent")
	}
	if a.HospitalID() != 0 {
		t.Fatalf("agent hospital ID after discharge = %d, want 0", a.HospitalID())
	}
}
