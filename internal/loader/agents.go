package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// LoadAgents parses one agent per line: "is_student is_working age x y
// household_id school_id work_id hospital_id initial_infected", where a
// membership ID of 0 means no membership and initial_infected is 0 or 1.
// worksAtSchool is derived: an agent with is_working=1 and a nonzero
// school_id is treated as a school employee rather than a workplace
// employee, matching how the source distinguishes school staff from
// generic workers by which ID is set. hospital_id is stored as the agent's
// hospital ID; worksAtHospital and isNonCovidPatient are false for every
// loaded agent.
func LoadAgents(r io.Reader) ([]*model.Agent, []int, error) {
	var out []*model.Agent
	var initiallyInfected []int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	nextID := 1
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) != 10 {
			return nil, nil, simerr.New(simerr.ConfigError,
				"agent file line %d: want \"is_student is_working age x y household_id school_id work_id hospital_id initial_infected\", got %d fields", lineNo, len(f))
		}
		isStudent, err := parseBool(f[0], "is_student", lineNo)
		if err != nil {
			return nil, nil, err
		}
		isWorking, err := parseBool(f[1], "is_working", lineNo)
		if err != nil {
			return nil, nil, err
		}
		age, err := parseInt(f[2], "agent age")
		if err != nil {
			return nil, nil, err
		}
		x, err := parseFloat(f[3], "agent x")
		if err != nil {
			return nil, nil, err
		}
		y, err := parseFloat(f[4], "agent y")
		if err != nil {
			return nil, nil, err
		}
		householdID, err := parseInt(f[5], "agent household_id")
		if err != nil {
			return nil, nil, err
		}
		schoolID, err := parseInt(f[6], "agent school_id")
		if err != nil {
			return nil, nil, err
		}
		workID, err := parseInt(f[7], "agent work_id")
		if err != nil {
			return nil, nil, err
		}
		hospitalID, err := parseInt(f[8], "agent hospital_id")
		if err != nil {
			return nil, nil, err
		}
		initialInfected, err := parseBool(f[9], "initial_infected", lineNo)
		if err != nil {
			return nil, nil, err
		}

		worksAtSchool := isWorking && schoolID > 0
		worksAtHospital := false

		a := model.NewAgent(nextID, age, isStudent, isWorking, x, y, householdID, schoolID, workID, hospitalID, worksAtSchool, worksAtHospital, false)
		out = append(out, a)
		if initialInfected {
			initiallyInfected = append(initiallyInfected, nextID)
		}
		nextID++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, simerr.Wrap(simerr.ConfigError, err, "reading agent file")
	}
	return out, initiallyInfected, nil
}

func parseBool(s, field string, lineNo int) (bool, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return false, simerr.Wrap(simerr.ConfigError, err, "agent file line %d: %s must be 0 or 1", lineNo, field)
	}
	if v != 0 && v != 1 {
		return false, simerr.New(simerr.ConfigError, "agent file line %d: %s must be 0 or 1, got %d", lineNo, field, v)
	}
	return v == 1, nil
}
