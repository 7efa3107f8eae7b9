package config

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// schoolTypes lists the recognized school-type tags a "<type> absenteeism
// correction" parameter line may reference.
var schoolTypes = map[string]bool{
	"daycare": true, "primary": true, "middle": true, "high": true, "college": true,
}

// ParseParameters reads whitespace-delimited "<name with spaces> <value>"
// lines and assembles a Parameters value. The parameter name is everything
// before the final whitespace-separated token, which is parsed as the
// numeric value -- this matches the "key with spaces, positional value"
// layout in the external interface.
func ParseParameters(r io.Reader) (Parameters, error) {
	var p Parameters
	p.AbsenteeismCorrection = make(map[string]float64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			return Parameters{}, simerr.New(simerr.ConfigError, "parameter file line %d: %q has no value", lineNo, line)
		}
		name := strings.TrimSpace(line[:idx])
		valStr := strings.TrimSpace(line[idx+1:])
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return Parameters{}, simerr.Wrap(simerr.ConfigError, err, "parameter file line %d: bad value for %q", lineNo, name)
		}
		if err := assign(&p, name, val); err != nil {
			return Parameters{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return Parameters{}, simerr.Wrap(simerr.ConfigError, err, "reading parameter file")
	}
	return p, nil
}

func assign(p *Parameters, name string, val float64) error {
	if strings.HasSuffix(name, " absenteeism correction") {
		typ := strings.TrimSuffix(name, " absenteeism correction")
		if !schoolTypes[typ] && typ != "work" {
			return simerr.New(simerr.ConfigError, "unknown school type %q in absenteeism correction parameter", typ)
		}
		p.AbsenteeismCorrection[typ] = val
		if typ == "work" {
			p.WorkAbsenteeismCorrection = val
		}
		return nil
	}

	switch name {
	case "household transmission rate":
		p.HouseholdTransmissionRate = val
	case "household scaling parameter":
		p.HouseholdScalingParameter = val
	case "transmission rate of home isolated":
		p.TransmissionRateHomeIso = val
	case "school transmission rate":
		p.SchoolTransmissionRate = val
	case "school employee transmission rate":
		p.SchoolEmployeeTransRate = val
	case "workplace transmission rate":
		p.WorkplaceTransmissionRate = val
	case "severity correction":
		p.SeverityCorrection = val
	case "latency log-normal mean":
		p.LatencyLognMean = val
	case "latency log-normal standard deviation":
		p.LatencyLognStd = val
	case "agent variability gamma shape":
		p.VariabilityGammaShape = val
	case "agent variability gamma scale":
		p.VariabilityGammaScale = val
	case "otd logn mean":
		p.OTDLognMean = val
	case "otd logn std":
		p.OTDLognStd = val
	case "oth gamma shape":
		p.OTHGammaShape = val
	case "oth gamma scale":
		p.OTHGammaScale = val
	case "htd wbl shape":
		p.HTDWblShape = val
	case "htd wbl scale":
		p.HTDWblScale = val
	case "fraction exposed never symptomatic":
		p.FractionExposedNeverSymptomatic = val
	case "fraction to get tested":
		p.FractionToGetTested = val
	case "exposed fraction to get tested":
		p.FractionExposedTested = val
	case "fraction tested in hospitals":
		p.FractionTestedInHospitals = val
	case "fraction false negative":
		p.FractionFalseNegative = val
	case "fraction false positive":
		p.FractionFalsePositive = val
	case "probability of death in ICU":
		p.ProbabilityDeathICU = val
	case "fraction with flu":
		p.FractionWithFlu = val
	case "time from exposed to infectiousness":
		p.TimeExposedToInfectiousness = val
	case "time from decision to test":
		p.TimeDecisionToTest = val
	case "time from test to results":
		p.TimeTestToResults = val
	case "recovery time":
		p.RecoveryTime = val
	case "time in ICU":
		p.TimeInICU = val
	case "time in hospital":
		p.TimeInHospital = val
	case "time in hospital after ICU":
		p.TimeInHospitalAfterICU = val
	case "time before death to ICU":
		p.TimeBeforeDeathToICU = val
	default:
		return simerr.New(simerr.ConfigError, "unknown parameter %q", name)
	}
	return nil
}
