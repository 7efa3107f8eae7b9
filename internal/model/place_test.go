package model

import (
	"math"
	"testing"
)

func TestHouseholdFinalizeScalesByRosterSize(t *testing.T) {
	h := NewHousehold(1, 0, 0, 1.0, 0.5, 0.8, 0.1)
	for _, id := range []int{1, 2, 3, 4} {
		h.Register(id, false)
	}
	h.AddExposed(1.0)
	h.AddExposed(1.0)
	h.Finalize()

	want := (1.0*0.5 + 1.0*0.5) / math.Pow(4, 0.8)
	if math.Abs(h.Lambda()-want) > 1e-9 {
		t.Fatalf("lambda = %g, want %g", h.Lambda(), want)
	}
}

func TestHouseholdFinalizeEmptyRosterDoesNotDivideByZero(t *testing.T) {
	h := NewHousehold(1, 0, 0, 1.0, 0.5, 0.8, 0.1)
	h.Finalize()
	if h.Lambda() != 0 {
		t.Fatalf("lambda = %g, want 0", h.Lambda())
	}
}

func TestSchoolAppliesAbsenteeismOnlyToSymptomatic(t *testing.T) {
	s := NewSchool(1, 0, 0, 2.0, Primary, 0.4, 0.3, 0.5)
	s.AddExposedStudent(1.0)
	s.Finalize()
	if got, want := s.Lambda(), 0.4; math.Abs(got-want) > 1e-9 {
		t.Fatalf("exposed lambda = %g, want %g", got, want)
	}

	s.Reset()
	s.AddSymptomaticStudent(1.0)
	s.Finalize()
	want := 1.0 * 2.0 * 0.4 * 0.5
	if math.Abs(s.Lambda()-want) > 1e-9 {
		t.Fatalf("symptomatic lambda = %g, want %g", s.Lambda(), want)
	}
}

func TestHospitalResetClearsTestingCount(t *testing.T) {
	h := NewHospital(1, 0, 0, 1.5, 0.2, 0.2, 0.1, 0.3, 0.4)
	h.AddTested(1.0)
	h.AddTested(1.0)
	if h.TestingCount() != 2 {
		t.Fatalf("testing count = %d, want 2", h.TestingCount())
	}
	h.Reset()
	if h.TestingCount() != 0 {
		t.Fatalf("testing count after reset = %d, want 0", h.TestingCount())
	}
}

func TestPlaceMembershipIsIdempotent(t *testing.T) {
	w := NewWorkplace(1, 0, 0, 1.0, 0.3, 0.9)
	w.Add(5)
	w.Add(5)
	if len(w.Members()) != 1 {
		t.Fatalf("members = %v, want exactly one entry", w.Members())
	}
	w.Remove(5)
	w.Remove(5)
	if len(w.Members()) != 0 {
		t.Fatalf("members after double remove = %v, want empty", w.Members())
	}
}

func TestUnknownSchoolTypeStringIsUnknown(t *testing.T) {
	var t2 SchoolType = 99
	if got := t2.String(); got != "unknown" {
		t.Fatalf("String() = %q, want %q", got, "unknown")
	}
}
