// Package loader parses the plain-text place, agent, and age-band files
// described in the external interface into model types, keeping all file
// I/O and format knowledge out of internal/model. It is a genuine external
// collaborator: no core package calls it, and the cmd binaries build their
// world through internal/demo instead.
package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Kylepayen02/ABM-COVID/internal/model"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

func fields(line string) []string { return strings.Fields(line) }

func parseFloat(s, context string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, simerr.Wrap(simerr.ConfigError, err, "%s: bad float %q", context, s)
	}
	return v, nil
}

func parseInt(s, context string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, simerr.Wrap(simerr.ConfigError, err, "%s: bad integer %q", context, s)
	}
	return v, nil
}

// LoadHouseholds parses "id x y" lines into Household places using the
// given transmission-rate parameters, shared across every household in
// the file (per-place transmission variation is not part of the closed
// parameter set).
func LoadHouseholds(r io.Reader, ck, betaHome, alpha, betaIsolated float64) ([]*model.Household, error) {
	var out []*model.Household
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f := fields(line)
		if len(f) != 3 {
			return nil, simerr.New(simerr.ConfigError, "household file line %d: want \"id x y\"", lineNo)
		}
		id, err := parseInt(f[0], "household id")
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(f[1], "household x")
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(f[2], "household y")
		if err != nil {
			return nil, err
		}
		out = append(out, model.NewHousehold(id, x, y, ck, betaHome, alpha, betaIsolated))
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "reading household file")
	}
	return out, nil
}

func parseSchoolType(s string) (model.SchoolType, error) {
	switch strings.ToLower(s) {
	case "daycare":
		return model.Daycare, nil
	case "primary":
		return model.Primary, nil
	case "middle":
		return model.Middle, nil
	case "high":
		return model.High, nil
	case "college":
		return model.College, nil
	default:
		return 0, simerr.New(simerr.ConfigError, "unknown school type %q", s)
	}
}

// LoadSchools parses "id x y type" lines, where type is one of {daycare,
// primary, middle, high, college}, using a per-type absenteeism
// correction lookup and shared transmission rates.
func LoadSchools(r io.Reader, ck, betaStudent, betaEmployee float64, psiByType map[string]float64) ([]*model.School, error) {
	var out []*model.School
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f := fields(line)
		if len(f) != 4 {
			return nil, simerr.New(simerr.ConfigError, "school file line %d: want \"id x y type\"", lineNo)
		}
		id, err := parseInt(f[0], "school id")
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(f[1], "school x")
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(f[2], "school y")
		if err != nil {
			return nil, err
		}
		kind, err := parseSchoolType(f[3])
		if err != nil {
			return nil, simerr.Wrap(simerr.ConfigError, err, "school file line %d", lineNo)
		}
		psi, ok := psiByType[strings.ToLower(f[3])]
		if !ok {
			return nil, simerr.New(simerr.ConfigError, "school file line %d: no absenteeism correction configured for type %q", lineNo, f[3])
		}
		out = append(out, model.NewSchool(id, x, y, ck, kind, betaStudent, betaEmployee, psi))
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "reading school file")
	}
	return out, nil
}

// LoadWorkplaces parses "id x y" lines into Workplace places.
func LoadWorkplaces(r io.Reader, ck, beta, psi float64) ([]*model.Workplace, error) {
	var out []*model.Workplace
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f := fields(line)
		if len(f) != 3 {
			return nil, simerr.New(simerr.ConfigError, "workplace file line %d: want \"id x y\"", lineNo)
		}
		id, err := parseInt(f[0], "workplace id")
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(f[1], "workplace x")
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(f[2], "workplace y")
		if err != nil {
			return nil, err
		}
		out = append(out, model.NewWorkplace(id, x, y, ck, beta, psi))
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "reading workplace file")
	}
	return out, nil
}

// LoadHospitals parses "id x y" lines into Hospital places. Hospitals are
// optional per the external interface: an empty or absent file is valid
// and yields no hospitals. In a run without hospitals, home-isolated
// agents are never moved to a hospital, but an agent drawn for direct
// hospital admission makes the step fail with a ConfigError.
func LoadHospitals(r io.Reader, ck, betaEmployee, betaPatient, betaTestee, betaHospitalized, betaICU float64) ([]*model.Hospital, error) {
	var out []*model.Hospital
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		f := fields(line)
		if len(f) != 3 {
			return nil, simerr.New(simerr.ConfigError, "hospital file line %d: want \"id x y\"", lineNo)
		}
		id, err := parseInt(f[0], "hospital id")
		if err != nil {
			return nil, err
		}
		x, err := parseFloat(f[1], "hospital x")
		if err != nil {
			return nil, err
		}
		y, err := parseFloat(f[2], "hospital y")
		if err != nil {
			return nil, err
		}
		out = append(out, model.NewHospital(id, x, y, ck, betaEmployee, betaPatient, betaTestee, betaHospitalized, betaICU))
	}
	if err := scanner.Err(); err != nil {
		return nil, simerr.Wrap(simerr.ConfigError, err, "reading hospital file")
	}
	return out, nil
}
