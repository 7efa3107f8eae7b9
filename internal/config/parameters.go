// Package config assembles the closed set of named simulation parameters
// from parsed key-value pairs, and validates them before anything in the
// core ever sees them. It is a genuine external collaborator: it produces
// plain values that internal/demo and cmd/simserver wire into the core,
// but no core package (internal/model, internal/infection,
// internal/contribution, internal/transitions, internal/orchestrator)
// imports it.
package config

import (
	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
	"github.com/Kylepayen02/ABM-COVID/internal/transitions"
)

// Parameters is the full closed set of named values the parameter file
// supplies, keyed here as typed fields instead of a free-form map.
type Parameters struct {
	HouseholdTransmissionRate  float64
	HouseholdScalingParameter  float64
	TransmissionRateHomeIso    float64
	SchoolTransmissionRate     float64
	SchoolEmployeeTransRate    float64
	AbsenteeismCorrection      map[string]float64 // keyed by school type string
	WorkplaceTransmissionRate  float64
	WorkAbsenteeismCorrection  float64
	SeverityCorrection         float64

	LatencyLognMean, LatencyLognStd             float64
	VariabilityGammaShape, VariabilityGammaScale float64
	OTDLognMean, OTDLognStd                     float64
	OTHGammaShape, OTHGammaScale                float64
	HTDWblShape, HTDWblScale                    float64

	FractionExposedNeverSymptomatic float64
	FractionToGetTested             float64
	FractionExposedTested           float64
	FractionTestedInHospitals       float64
	FractionFalseNegative           float64
	FractionFalsePositive           float64
	ProbabilityDeathICU             float64
	FractionWithFlu                 float64

	TimeExposedToInfectiousness float64
	TimeDecisionToTest          float64
	TimeTestToResults           float64
	RecoveryTime                float64
	TimeInICU                   float64
	TimeInHospital              float64
	TimeInHospitalAfterICU      float64
	TimeBeforeDeathToICU        float64
}

// Validate checks that every parameter this run needs is present and in
// domain, returning a ConfigError describing the first problem found.
func (p Parameters) Validate() error {
	positive := map[string]float64{
		"household transmission rate": p.HouseholdTransmissionRate,
		"household scaling parameter": p.HouseholdScalingParameter,
		"school transmission rate":    p.SchoolTransmissionRate,
		"workplace transmission rate": p.WorkplaceTransmissionRate,
		"latency log-normal standard deviation": p.LatencyLognStd,
		"agent variability gamma shape":         p.VariabilityGammaShape,
		"agent variability gamma scale":         p.VariabilityGammaScale,
		"otd logn std":                          p.OTDLognStd,
		"oth gamma shape":                       p.OTHGammaShape,
		"oth gamma scale":                       p.OTHGammaScale,
		"htd wbl shape":                         p.HTDWblShape,
		"htd wbl scale":                         p.HTDWblScale,
		"recovery time":                         p.RecoveryTime,
	}
	for name, v := range positive {
		if v <= 0 {
			return simerr.New(simerr.ConfigError, "parameter %q must be positive, got %g", name, v)
		}
	}
	fractions := map[string]float64{
		"fraction exposed never symptomatic": p.FractionExposedNeverSymptomatic,
		"exposed fraction to get tested":     p.FractionExposedTested,
		"fraction tested in hospitals":       p.FractionTestedInHospitals,
		"fraction false negative":            p.FractionFalseNegative,
		"fraction false positive":            p.FractionFalsePositive,
		"probability of death in ICU":        p.ProbabilityDeathICU,
		"fraction with flu":                  p.FractionWithFlu,
	}
	for name, v := range fractions {
		if v < 0 || v > 1 {
			return simerr.New(simerr.ConfigError, "parameter %q must be a fraction in [0,1], got %g", name, v)
		}
	}
	if len(p.AbsenteeismCorrection) == 0 {
		return simerr.New(simerr.ConfigError, "no per-school-type absenteeism correction configured")
	}
	return nil
}

// InfectionParams projects the subset of Parameters internal/infection's
// Sampler needs.
func (p Parameters) InfectionParams() infection.Params {
	return infection.Params{
		LatencyLognMean:             p.LatencyLognMean,
		LatencyLognStd:              p.LatencyLognStd,
		VariabilityGammaShape:       p.VariabilityGammaShape,
		VariabilityGammaScale:       p.VariabilityGammaScale,
		OnsetToDeathLognMean:        p.OTDLognMean,
		OnsetToDeathLognStd:         p.OTDLognStd,
		OnsetToHospGammaShape:       p.OTHGammaShape,
		OnsetToHospGammaScale:       p.OTHGammaScale,
		HospToDeathWblShape:         p.HTDWblShape,
		HospToDeathWblScale:         p.HTDWblScale,
		ProbRecoveringExposed:       p.FractionExposedNeverSymptomatic,
		ProbDeathICU:                p.ProbabilityDeathICU,
	}
}

// TransitionParams projects the subset of Parameters internal/transitions
// needs.
func (p Parameters) TransitionParams() transitions.Params {
	return transitions.Params{
		FractionExposedTested:       p.FractionExposedTested,
		FractionTestedInHospital:    p.FractionTestedInHospitals,
		FractionFalseNegative:       p.FractionFalseNegative,
		FractionFalsePositive:       p.FractionFalsePositive,
		TimeExposedToInfectiousness: p.TimeExposedToInfectiousness,
		TimeDecisionToTest:          p.TimeDecisionToTest,
		TimeTestToResults:           p.TimeTestToResults,
		RecoveryTime:                p.RecoveryTime,
		TimeInICU:                   p.TimeInICU,
		TimeInHospital:              p.TimeInHospital,
		TimeInHospitalAfterICU:      p.TimeInHospitalAfterICU,
		TimeBeforeDeathToICU:        p.TimeBeforeDeathToICU,
	}
}
