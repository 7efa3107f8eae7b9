package infection

import (
	"math"
	"math/rand"
	"testing"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

func testSampler(t *testing.T) *Sampler {
	t.Helper()
	mortality, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 59, P: 0.01}, {Lo: 60, Hi: 120, P: 0.2}})
	if err != nil {
		t.Fatal(err)
	}
	hosp, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 59, P: 0.1}, {Lo: 60, Hi: 120, P: 0.4}})
	if err != nil {
		t.Fatal(err)
	}
	icu, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 59, P: 0.05}, {Lo: 60, Hi: 120, P: 0.3}})
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewSampler(Params{
		LatencyLognMean: 1.0, LatencyLognStd: 0.3,
		VariabilityGammaShape: 2.0, VariabilityGammaScale: 1.0,
		OnsetToDeathLognMean: 2.0, OnsetToDeathLognStd: 0.3,
		OnsetToHospGammaShape: 2.0, OnsetToHospGammaScale: 1.5,
		HospToDeathWblShape: 2.0, HospToDeathWblScale: 5.0,
		ProbRecoveringExposed: 0.3, ProbDeathICU: 0.4,
	}, mortality, hosp, icu)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestAgeTableRejectsGapsAndOverlaps(t *testing.T) {
	if _, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 10, P: 0.1}, {Lo: 12, Hi: 20, P: 0.2}}); !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("expected ConfigError for gap, got %v", err)
	}
	if _, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 10, P: 0.1}, {Lo: 10, Hi: 20, P: 0.2}}); !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("expected ConfigError for overlap, got %v", err)
	}
}

func TestAgeTableBeyondHighestBandUsesHighestProbability(t *testing.T) {
	table, err := NewAgeTable([]AgeBand{{Lo: 0, Hi: 59, P: 0.1}, {Lo: 60, Hi: 89, P: 0.4}})
	if err != nil {
		t.Fatal(err)
	}
	p, err := table.Probability(150)
	if err != nil {
		t.Fatal(err)
	}
	if p != 0.4 {
		t.Fatalf("probability beyond highest band = %g, want 0.4", p)
	}
}

func TestAgeTableBelowLowestBandIsOutOfRange(t *testing.T) {
	table, err := NewAgeTable([]AgeBand{{Lo: 18, Hi: 59, P: 0.1}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := table.Probability(5); !simerr.Is(err, simerr.OutOfRange) {
		t.Fatalf("expected OutOfRange, got %v", err)
	}
}

func TestInfectedProbabilityMatchesExponentialCDF(t *testing.T) {
	s := testSampler(t)
	r := rand.New(rand.NewSource(42))
	lambda, dt := 0.05, 1.0
	want := 1 - math.Exp(-lambda*dt)

	const n = 20000
	count := 0
	for i := 0; i < n; i++ {
		if s.Infected(r, lambda, dt) {
			count++
		}
	}
	got := float64(count) / n
	tol := 5 / math.Sqrt(n)
	if math.Abs(got-want) > tol {
		t.Fatalf("infected fraction = %g, want ~%g (tolerance %g)", got, want, tol)
	}
}

func TestInfectedZeroLambdaNeverInfects(t *testing.T) {
	s := testSampler(t)
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if s.Infected(r, 0, 1.0) {
			t.Fatal("infected() returned true with lambda = 0")
		}
	}
}

func TestGammaSamplerPositiveAndMeanNearShapeTimesScale(t *testing.T) {
	s := testSampler(t)
	r := rand.New(rand.NewSource(7))
	const n = 5000
	var sum float64
	for i := 0; i < n; i++ {
		v, err := s.InfectiousnessVariability(r)
		if err != nil {
			t.Fatal(err)
		}
		if v <= 0 {
			t.Fatalf("gamma sample must be positive, got %g", v)
		}
		sum += v
	}
	mean := sum / n
	want := 2.0 * 1.0
	if math.Abs(mean-want) > 0.1 {
		t.Fatalf("gamma sample mean = %g, want ~%g", mean, want)
	}
}

func TestWeibullAndGammaRejectNonPositiveParameters(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	if _, err := sampleGamma(r, 0, 1); !simerr.Is(err, simerr.NumericError) {
		t.Fatalf("expected NumericError, got %v", err)
	}
	if _, err := sampleWeibull(r, 1, -1); !simerr.Is(err, simerr.NumericError) {
		t.Fatalf("expected NumericError, got %v", err)
	}
}

func TestRandomHospitalIDRangeAndZeroHospitalsError(t *testing.T) {
	s := testSampler(t)
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		id, err := s.RandomHospitalID(r, 5)
		if err != nil {
			t.Fatal(err)
		}
		if id < 1 || id > 5 {
			t.Fatalf("hospital ID %d out of range [1,5]", id)
		}
	}
	if _, err := s.RandomHospitalID(r, 0); !simerr.Is(err, simerr.ConfigError) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}
