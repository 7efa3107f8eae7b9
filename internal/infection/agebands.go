package infection

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Kylepayen02/ABM-COVID/internal/simerr"
)

// AgeBand is one parsed (lo, hi, probability) entry of an age-conditioned
// probability table. Parsed once at construction, mirroring the original
// source's set_mortality_rates/set_hospitalized_fractions/
// set_hospitalized_ICU_fractions, which turn "lo-hi" string keys into
// tuple<int,int,double> once rather than re-parsing per query.
type AgeBand struct {
	Lo, Hi int
	P      float64
}

// AgeTable holds a sequence of non-overlapping AgeBands sorted by Lo, and
// answers "what probability applies to this age" queries by linear scan --
// tables are small (a handful of decade-wide bands), so a scan is simpler
// and just as fast as a binary search.
type AgeTable struct {
	bands []AgeBand
}

// ParseAgeLine parses one "<lo>-<hi> <probability>" line into an AgeBand.
func ParseAgeLine(line string) (AgeBand, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return AgeBand{}, simerr.New(simerr.ConfigError, "age-band line %q: want \"<lo>-<hi> <probability>\"", line)
	}
	loHi := strings.SplitN(fields[0], "-", 2)
	if len(loHi) != 2 {
		return AgeBand{}, simerr.New(simerr.ConfigError, "age-band line %q: range %q must be lo-hi", line, fields[0])
	}
	lo, err := strconv.Atoi(loHi[0])
	if err != nil {
		return AgeBand{}, simerr.Wrap(simerr.ConfigError, err, "age-band line %q: bad lo", line)
	}
	hi, err := strconv.Atoi(loHi[1])
	if err != nil {
		return AgeBand{}, simerr.Wrap(simerr.ConfigError, err, "age-band line %q: bad hi", line)
	}
	p, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return AgeBand{}, simerr.Wrap(simerr.ConfigError, err, "age-band line %q: bad probability", line)
	}
	if lo > hi {
		return AgeBand{}, simerr.New(simerr.ConfigError, "age-band line %q: lo %d > hi %d", line, lo, hi)
	}
	if p < 0 || p > 1 {
		return AgeBand{}, simerr.New(simerr.ConfigError, "age-band line %q: probability %g out of [0,1]", line, p)
	}
	return AgeBand{Lo: lo, Hi: hi, P: p}, nil
}

// NewAgeTable validates bands for gaps/overlaps and returns a table sorted
// by Lo. Bands must be given already sorted by Lo -- the loader is
// responsible for reading them in file order and this constructor only
// checks contiguity, matching the original source's map-keyed-by-range
// representation (which has no ordering guarantee of its own, so the Go
// port makes the ordering explicit instead of re-deriving it per query).
func NewAgeTable(bands []AgeBand) (*AgeTable, error) {
	if len(bands) == 0 {
		return nil, simerr.New(simerr.ConfigError, "age table has no bands")
	}
	for i := 1; i < len(bands); i++ {
		prev, cur := bands[i-1], bands[i]
		if cur.Lo <= prev.Hi {
			return nil, simerr.New(simerr.ConfigError, "age table has overlapping bands [%d-%d] and [%d-%d]", prev.Lo, prev.Hi, cur.Lo, cur.Hi)
		}
		if cur.Lo != prev.Hi+1 {
			return nil, simerr.New(simerr.ConfigError, "age table has a gap between [%d-%d] and [%d-%d]", prev.Lo, prev.Hi, cur.Lo, cur.Hi)
		}
	}
	out := make([]AgeBand, len(bands))
	copy(out, bands)
	return &AgeTable{bands: out}, nil
}

// Probability returns the probability for the band containing age. Ages
// below the lowest band's Lo are an OutOfRange error; ages beyond the highest band's Hi
// silently use the highest band's probability, per the documented edge
// case for tables that cap out before the oldest possible agent.
func (t *AgeTable) Probability(age int) (float64, error) {
	if age < t.bands[0].Lo {
		return 0, simerr.New(simerr.OutOfRange, "age %d is below the lowest configured band [%d-%d]", age, t.bands[0].Lo, t.bands[0].Hi)
	}
	for _, b := range t.bands {
		if age >= b.Lo && age <= b.Hi {
			return b.P, nil
		}
	}
	return t.bands[len(t.bands)-1].P, nil
}

func (t *AgeTable) String() string {
	var sb strings.Builder
	for i, b := range t.bands {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "[%d-%d]=%.4f", b.Lo, b.Hi, b.P)
	}
	return sb.String()
}
