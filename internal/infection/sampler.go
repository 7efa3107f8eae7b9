package infection

import (
	"math"
	"math/rand"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// Params bundles the closed set of distribution parameters and scalar
// probabilities the Sampler needs. Field names mirror the distribution parameters
// translated to camelCase.
type Params struct {
	LatencyLognMean, LatencyLognStd           float64
	VariabilityGammaShape, VariabilityGammaScale float64
	OnsetToDeathLognMean, OnsetToDeathLognStd float64
	OnsetToHospGammaShape, OnsetToHospGammaScale float64
	HospToDeathWblShape, HospToDeathWblScale  float64

	// ProbRecoveringExposed is the probability an exposed agent never
	// develops symptoms.
	ProbRecoveringExposed float64
	// ProbDeathICU is the (non-age-banded) probability an ICU patient
	// dies, applied on top of the age-banded ICU-admission draw --
	// mirrors the original source's single prob_death_icu scalar.
	ProbDeathICU float64
}

// Sampler is the sole source of stochastic decisions in the simulator. It
// holds no RNG of its own: every draw method takes an explicit *rand.Rand,
// so callers control the RNG stream and lifetime.
type Sampler struct {
	params Params

	mortality       *AgeTable
	hospitalization *AgeTable
	icu             *AgeTable
}

// NewSampler builds a Sampler from validated parameters and the three
// age-banded probability tables.
func NewSampler(params Params, mortality, hospitalization, icu *AgeTable) (*Sampler, error) {
	if mortality == nil || hospitalization == nil || icu == nil {
		return nil, simerr.New(simerr.ConfigError, "sampler requires mortality, hospitalization, and ICU age tables")
	}
	if params.LatencyLognStd <= 0 || params.OnsetToDeathLognStd <= 0 {
		return nil, simerr.New(simerr.ConfigError, "lognormal std parameters must be positive")
	}
	return &Sampler{params: params, mortality: mortality, hospitalization: hospitalization, icu: icu}, nil
}

// Latency draws a latency duration in days: lognormal(mu_lat, sigma_lat).
func (s *Sampler) Latency(r *rand.Rand) float64 {
	return sampleLognormal(r, s.params.LatencyLognMean, s.params.LatencyLognStd)
}

// InfectiousnessVariability draws the per-agent infectiousness-variability
// factor, set once on exposure and reused for every contribution the agent
// makes thereafter: gamma(k_v, theta_v).
func (s *Sampler) InfectiousnessVariability(r *rand.Rand) (float64, error) {
	return sampleGamma(r, s.params.VariabilityGammaShape, s.params.VariabilityGammaScale)
}

// OnsetToDeath draws the onset-to-death duration: lognormal(mu_otd, sigma_otd).
func (s *Sampler) OnsetToDeath(r *rand.Rand) float64 {
	return sampleLognormal(r, s.params.OnsetToDeathLognMean, s.params.OnsetToDeathLognStd)
}

// OnsetToHospitalization draws the onset-to-hospitalization duration:
// gamma(k_oth, theta_oth).
func (s *Sampler) OnsetToHospitalization(r *rand.Rand) (float64, error) {
	return sampleGamma(r, s.params.OnsetToHospGammaShape, s.params.OnsetToHospGammaScale)
}

// HospitalizationToDeath draws the hospitalization-to-death duration:
// Weibull(k_htd, theta_htd).
func (s *Sampler) HospitalizationToDeath(r *rand.Rand) (float64, error) {
	return sampleWeibull(r, s.params.HospToDeathWblShape, s.params.HospToDeathWblScale)
}

// RecoveringExposed draws whether a newly exposed agent will recover
// without ever developing symptoms.
func (s *Sampler) RecoveringExposed(r *rand.Rand) bool {
	return r.Float64() < s.params.ProbRecoveringExposed
}

// WillDieNonICU draws whether a symptomatic agent of the given age will
// die outside of the ICU (home isolation or general-ward hospitalization),
// using the age-banded mortality table.
func (s *Sampler) WillDieNonICU(r *rand.Rand, age int) (bool, error) {
	p, err := s.mortality.Probability(age)
	if err != nil {
		return false, err
	}
	return r.Float64() < p, nil
}

// AgentHospitalized draws whether a symptomatic agent of the given age
// will be hospitalized at all, using the age-banded hospitalization table.
func (s *Sampler) AgentHospitalized(r *rand.Rand, age int) (bool, error) {
	p, err := s.hospitalization.Probability(age)
	if err != nil {
		return false, err
	}
	return r.Float64() < p, nil
}

// AgentHospitalizedICU draws whether a hospitalized agent of the given age
// escalates to ICU care, using the age-banded ICU table.
func (s *Sampler) AgentHospitalizedICU(r *rand.Rand, age int) (bool, error) {
	p, err := s.icu.Probability(age)
	if err != nil {
		return false, err
	}
	return r.Float64() < p, nil
}

// WillDieICU draws whether an ICU patient dies, using the fixed
// (non-age-banded) ICU death probability.
func (s *Sampler) WillDieICU(r *rand.Rand) bool {
	return r.Float64() < s.params.ProbDeathICU
}

// TestedInHospital draws whether a scheduled test is taken in a hospital
// (vs. a drive-through site), given the configured probability p.
func (s *Sampler) TestedInHospital(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// FalseNegativeTestResult draws whether a truly infected agent's test
// result comes back negative, given the test's false-negative rate p.
func (s *Sampler) FalseNegativeTestResult(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// FalsePositiveTestResult draws whether an uninfected agent's test result
// comes back positive, given the test's false-positive rate p.
func (s *Sampler) FalsePositiveTestResult(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// Infected draws whether an agent exposed to pressure lambda over a step
// of duration dt becomes infected: probability 1 - exp(-lambda*dt).
func (s *Sampler) Infected(r *rand.Rand, lambda, dt float64) bool {
	if lambda <= 0 {
		return false
	}
	p := 1 - math.Exp(-lambda*dt)
	return r.Float64() < p
}

// RandomHospitalID draws a uniform integer hospital ID in [1, n].
func (s *Sampler) RandomHospitalID(r *rand.Rand, n int) (int, error) {
	if n < 1 {
		return 0, simerr.New(simerr.ConfigError, "cannot draw a hospital ID: no hospitals configured")
	}
	return 1 + r.Intn(n), nil
}

// RandomHouseholdID draws a uniform integer household ID in [1, n].
func (s *Sampler) RandomHouseholdID(r *rand.Rand, n int) (int, error) {
	if n < 1 {
		return 0, simerr.New(simerr.ConfigError, "cannot draw a household ID: no households configured")
	}
	return 1 + r.Intn(n), nil
}
