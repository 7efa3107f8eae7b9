package loader

import (
	"strings"
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

func TestLoadAgentsParsesFieldsAndAssignsSequentialIDs(t *testing.T) {
	src := "1 0 10 0.0 0.0 1 1 0 0 1\n0 1 35 1.0 1.0 1 0 1 0 0\n"
	agents, initial, err := LoadAgents(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 2 {
		t.Fatalf("len = %d, want 2", len(agents))
	}
	if agents[0].ID() != 1 || agents[1].ID() != 2 {
		t.Fatalf("agent IDs = %d, %d, want 1, 2", agents[0].ID(), agents[1].ID())
	}
	if !agents[0].Student() || agents[0].Working() {
		t.Fatal("first agent should be a student, not working")
	}
	if agents[1].WorkID() != 1 {
		t.Fatalf("second agent work ID = %d, want 1", agents[1].WorkID())
	}
	if len(initial) != 1 || initial[0] != 1 {
		t.Fatalf("initially infected = %v, want [1]", initial)
	}
}

func TestLoadAgentsDerivesSchoolEmployeeFromWorkingAndSchoolID(t *testing.T) {
	src := "0 1 40 0.0 0.0 1 2 0 0 0\n"
	agents, _, err := LoadAgents(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if !agents[0].WorksAtSchool() {
		t.Fatal("a working agent with a nonzero school ID should be flagged as a school employee")
	}
}

func TestLoadAgentsWrongFieldCountIsConfigError(t *testing.T) {
	_, _, err := LoadAgents(strings.NewReader("1 0 10 0.0 0.0 1 1 0 0\n"))
	if !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestLoadAgentsBadBooleanIsConfigError(t *testing.T) {
	_, _, err := LoadAgents(strings.NewReader("2 0 10 0.0 0.0 1 1 0 0 0\n"))
	if !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("err = %v, want ConfigError", err)
	}
}

func TestLoadAgentsSkipsBlankLines(t *testing.T) {
	src := "1 0 10 0.0 0.0 1 1 0 0 0\n\n0 1 30 0.0 0.0 1 0 1 0 0\n"
	agents, _, err := LoadAgents(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(agents) != 2 {
		t.Fatalf("len = %d, want 2", len(agents))
	}
}
