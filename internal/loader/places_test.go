package loader

import (
	"strings"
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

func TestLoadHouseholdsParsesEachLine(t *testing.T) {
	src := "1 0.0 0.0\n2 1.5 2.5\n"
	households, err := LoadHouseholds(strings.NewReader(src), 1.0, 0.5, 0.8, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(households) != 2 {
		t.Fatalf("len = %d, want 2", len(households))
	}
	if households[1].ID() != 2 {
		t.Fatalf("second household ID = %d, want 2", households[1].ID())
	}
}

func TestLoadHouseholdsSkipsBlankLines(t *testing.T) {
	src := "1 0.0 0.0\n\n2 1.0 1.0\n"
	households, err := LoadHouseholds(strings.NewReader(src), 1.0, 0.5, 0.8, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if len(households) != 2 {
		t.Fatalf("len = %d, want 2", len(households))
	}
}

func TestLoadHouseholdsWrongFieldCountIsConfigError(t *testing.T) {
	_, err := LoadHouseholds(strings.NewReader("1 0.0\n"), 1.0, 0.5, 0.8, 0.1)
	if !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestLoadSchoolsAssignsPerTypeAbsenteeism(t *testing.T) {
	psi := map[string]float64{"primary": 0.9, "high": 0.7}
	schools, err := LoadSchools(strings.NewReader("1 0 0 primary\n2 0 0 high\n"), 1.0, 0.3, 0.3, psi)
	if err != nil {
		t.Fatal(err)
	}
	if len(schools) != 2 {
		t.Fatalf("len = %d, want 2", len(schools))
	}
}

func TestLoadSchoolsUnknownTypeIsConfigError(t *testing.T) {
	_, err := LoadSchools(strings.NewReader("1 0 0 kindergarten\n"), 1.0, 0.3, 0.3, map[string]float64{})
	if !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestLoadSchoolsMissingAbsenteeismEntryIsConfigError(t *testing.T) {
	_, err := LoadSchools(strings.NewReader("1 0 0 primary\n"), 1.0, 0.3, 0.3, map[string]float64{})
	if !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestLoadWorkplacesParsesEachLine(t *testing.T) {
	workplaces, err := LoadWorkplaces(strings.NewReader("1 0 0\n2 1 1\n3 2 2\n"), 1.0, 0.3, 0.9)
	if err != nil {
		t.Fatal(err)
	}
	if len(workplaces) != 3 {
		t.Fatalf("len = %d, want 3", len(workplaces))
	}
}

func TestLoadHospitalsEmptyFileIsValid(t *testing.T) {
	hospitals, err := LoadHospitals(strings.NewReader(""), 1.0, 0.2, 0.2, 0.1, 0.3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(hospitals) != 0 {
		t.Fatalf("len = %d, want 0", len(hospitals))
	}
}

func TestLoadHospitalsParsesEachLine(t *testing.T) {
	hospitals, err := LoadHospitals(strings.NewReader("1 0 0\n"), 1.0, 0.2, 0.2, 0.1, 0.3, 0.4)
	if err != nil {
		t.Fatal(err)
	}
	if len(hospitals) != 1 {
		t.Fatalf("len = %d, want 1", len(hospitals))
	}
}
