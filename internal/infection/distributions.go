// Package infection is the sole source of stochastic decisions in the
// simulator: duration draws, age-conditioned probability lookups, and the
// infection-pressure-to-outcome roll. Every method takes an explicit
// *rand.Rand -- there is no package-level RNG state, so a run seeded with
// the same handle reproduces bit-for-bit.
package infection

import (
	"math"
	"math/rand"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// sampleLognormal draws from a lognormal distribution with the given
// underlying-normal mean and standard deviation, mirroring the
// mean+std*NormFloat64 pattern the retrieved corpus uses for its own
// stochastic duration draws.
func sampleLognormal(r *rand.Rand, mu, sigma float64) float64 {
	return math.Exp(mu + sigma*r.NormFloat64())
}

// sampleGamma draws from a Gamma(shape, scale) distribution using the
// Marsaglia-Tsang method. For shape < 1 it uses the standard boost-by-one
// transform (Gamma(a) = Gamma(a+1) * U^(1/a)).
func sampleGamma(r *rand.Rand, shape, scale float64) (float64, error) {
	if shape <= 0 || scale <= 0 {
		return 0, simerr.New(simerr.NumericError, "gamma shape and scale must be positive, got shape=%g scale=%g", shape, scale)
	}
	if shape < 1 {
		u := r.Float64()
		g, err := sampleGamma(r, shape+1, scale)
		if err != nil {
			return 0, err
		}
		return g * math.Pow(u, 1/shape), nil
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := r.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := r.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v * scale, nil
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v * scale, nil
		}
	}
}

// sampleWeibull draws from a Weibull(shape, scale) distribution via
// inverse-CDF sampling: scale * (-ln(1-U))^(1/shape).
func sampleWeibull(r *rand.Rand, shape, scale float64) (float64, error) {
	if shape <= 0 || scale <= 0 {
		return 0, simerr.New(simerr.NumericError, "weibull shape and scale must be positive, got shape=%g scale=%g", shape, scale)
	}
	u := r.Float64()
	return scale * math.Pow(-math.Log(1-u), 1/shape), nil
}
