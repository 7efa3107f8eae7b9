package model

import "math"

// Place is the common capability set every place variant implements:
// membership bookkeeping, and the accumulator lifecycle (finalize/reset).
// The contribution-specific add_* entry points are
// NOT part of this interface -- callers already know which place kind
// they are dispatching to, so those methods live on the concrete types.
type Place interface {
	ID() int
	Register(agentID int, wasInfected bool)
	Add(agentID int)
	Remove(agentID int)
	Members() []int
	InfectedCount() int
	Finalize()
	Reset()
	Lambda() float64
}

// base holds the fields and behavior shared by every place variant:
// identity, location, severity correction, roster, and the
// accumulate-then-finalize-then-reset lifecycle.
type base struct {
	id            int
	x, y          float64
	ck            float64
	members       []int
	infectedCount int
	sum           float64
	lambda        float64
}

func newBase(id int, x, y, ck float64) base {
	return base{id: id, x: x, y: y, ck: ck}
}

func (b *base) ID() int            { return b.id }
func (b *base) X() float64         { return b.x }
func (b *base) Y() float64         { return b.y }
func (b *base) SeverityCorrection() float64 { return b.ck }
func (b *base) InfectedCount() int { return b.infectedCount }
func (b *base) Lambda() float64    { return b.lambda }

// Members returns a defensive copy of the current roster.
func (b *base) Members() []int {
	out := make([]int, len(b.members))
	copy(out, b.members)
	return out
}

func (b *base) indexOf(agentID int) int {
	for i, m := range b.members {
		if m == agentID {
			return i
		}
	}
	return -1
}

// Register adds agentID to the roster if not already present, and bumps
// the infected counter if wasInfected. Idempotent: registering the same
// agent twice is a no-op past the first call.
func (b *base) Register(agentID int, wasInfected bool) {
	if b.indexOf(agentID) >= 0 {
		return
	}
	b.members = append(b.members, agentID)
	if wasInfected {
		b.infectedCount++
	}
}

// Add appends agentID to the roster if absent. Used when isolation or
// hospitalization dynamically changes membership mid-run.
func (b *base) Add(agentID int) {
	if b.indexOf(agentID) >= 0 {
		return
	}
	b.members = append(b.members, agentID)
}

// Remove drops agentID from the roster if present.
func (b *base) Remove(agentID int) {
	i := b.indexOf(agentID)
	if i < 0 {
		return
	}
	b.members = append(b.members[:i], b.members[i+1:]...)
}

// Reset zeroes the accumulator and derived pressure ahead of the next step.
func (b *base) Reset() {
	b.sum = 0
	b.lambda = 0
}

// Household is a residence. Its finalization formula additionally scales
// by roster size raised to alpha, and it carries a second, lower
// transmission rate for home-isolated contributions.
type Household struct {
	base
	alpha        float64
	betaHome     float64
	betaIsolated float64
}

// NewHousehold builds a Household with the given transmission rate,
// scaling exponent, and home-isolated transmission rate.
func NewHousehold(id int, x, y, ck, betaHome, alpha, betaIsolated float64) *Household {
	return &Household{base: newBase(id, x, y, ck), alpha: alpha, betaHome: betaHome, betaIsolated: betaIsolated}
}

// AddExposed adds an untested, uncontained exposed occupant's contribution.
func (h *Household) AddExposed(infVar float64) { h.sum += infVar * h.betaHome }

// AddSymptomatic adds an untested, uncontained symptomatic occupant's
// contribution (severity-corrected).
func (h *Household) AddSymptomatic(infVar float64) { h.sum += infVar * h.ck * h.betaHome }

// AddExposedHomeIsolated adds an exposed, home-isolated occupant's
// contribution, using the (typically lower) isolated transmission rate.
func (h *Household) AddExposedHomeIsolated(infVar float64) { h.sum += infVar * h.betaIsolated }

// AddSymptomaticHomeIsolated adds a symptomatic, home-isolated occupant's
// contribution.
func (h *Household) AddSymptomaticHomeIsolated(infVar float64) {
	h.sum += infVar * h.ck * h.betaIsolated
}

// Finalize sets lambda = sum / max(1, n_members)^alpha, guarding against
// division by zero in an empty household.
func (h *Household) Finalize() {
	n := len(h.members)
	if n < 1 {
		n = 1
	}
	h.lambda = h.sum / math.Pow(float64(n), h.alpha)
}

// SchoolType enumerates the recognized school types; each carries its own
// absenteeism correction. An unrecognized type string is a ConfigError at
// load time (see internal/loader), not representable here.
type SchoolType int

const (
	Daycare SchoolType = iota
	Primary
	Middle
	High
	College
)

func (t SchoolType) String() string {
	switch t {
	case Daycare:
		return "daycare"
	case Primary:
		return "primary"
	case Middle:
		return "middle"
	case High:
		return "high"
	case College:
		return "college"
	default:
		return "unknown"
	}
}

// School holds distinct transmission rates for students and employees, and
// a single absenteeism multiplier applied to symptomatic contributions of
// either category.
type School struct {
	base
	kind          SchoolType
	betaStudent   float64
	betaEmployee  float64
	psi           float64
}

// NewSchool builds a School of the given type with per-category
// transmission rates and an absenteeism correction.
func NewSchool(id int, x, y, ck float64, kind SchoolType, betaStudent, betaEmployee, psi float64) *School {
	return &School{base: newBase(id, x, y, ck), kind: kind, betaStudent: betaStudent, betaEmployee: betaEmployee, psi: psi}
}

func (s *School) Type() SchoolType { return s.kind }

func (s *School) AddExposedStudent(infVar float64)  { s.sum += infVar * s.betaStudent }
func (s *School) AddExposedEmployee(infVar float64) { s.sum += infVar * s.betaEmployee }

func (s *School) AddSymptomaticStudent(infVar float64) {
	s.sum += infVar * s.ck * s.betaStudent * s.psi
}
func (s *School) AddSymptomaticEmployee(infVar float64) {
	s.sum += infVar * s.ck * s.betaEmployee * s.psi
}

// Finalize sets lambda = sum: schools apply no additional scaling.
func (s *School) Finalize() { s.lambda = s.sum }

// Workplace carries a single transmission rate and a single absenteeism
// multiplier for symptomatic contributions.
type Workplace struct {
	base
	beta float64
	psi  float64
}

// NewWorkplace builds a Workplace with the given transmission rate and
// absenteeism correction.
func NewWorkplace(id int, x, y, ck, beta, psi float64) *Workplace {
	return &Workplace{base: newBase(id, x, y, ck), beta: beta, psi: psi}
}

func (w *Workplace) AddExposed(infVar float64) { w.sum += infVar * w.beta }
func (w *Workplace) AddSymptomatic(infVar float64) {
	w.sum += infVar * w.ck * w.beta * w.psi
}

// Finalize sets lambda = sum: workplaces apply no additional scaling.
func (w *Workplace) Finalize() { w.lambda = w.sum }

// Hospital carries a distinct transmission rate per occupant category and
// tracks how many current occupants are awaiting a test result, which the
// orchestrator may report as a load statistic.
type Hospital struct {
	base
	betaEmployee     float64
	betaPatient      float64
	betaTestee       float64
	betaHospitalized float64
	betaICU          float64
	testingCount     int
}

// NewHospital builds a Hospital with per-category transmission rates.
func NewHospital(id int, x, y, ck, betaEmployee, betaPatient, betaTestee, betaHospitalized, betaICU float64) *Hospital {
	return &Hospital{
		base:             newBase(id, x, y, ck),
		betaEmployee:     betaEmployee,
		betaPatient:      betaPatient,
		betaTestee:       betaTestee,
		betaHospitalized: betaHospitalized,
		betaICU:          betaICU,
	}
}

func (h *Hospital) TestingCount() int { return h.testingCount }

func (h *Hospital) AddExposedEmployee(infVar float64) { h.sum += infVar * h.betaEmployee }
func (h *Hospital) AddSymptomaticEmployee(infVar float64) {
	h.sum += infVar * h.ck * h.betaEmployee
}

// AddExposedPatient adds the contribution of a non-covid hospital patient
// who is also exposed.
func (h *Hospital) AddExposedPatient(infVar float64) { h.sum += infVar * h.betaPatient }
func (h *Hospital) AddSymptomaticPatient(infVar float64) {
	h.sum += infVar * h.ck * h.betaPatient
}

// AddTested adds the contribution of an agent currently in the hospital
// awaiting a test result, and bumps the running testee count for the step.
func (h *Hospital) AddTested(infVar float64) {
	h.sum += infVar * h.betaTestee
	h.testingCount++
}

// AddHospitalized adds a general-ward, symptomatic occupant's contribution.
func (h *Hospital) AddHospitalized(infVar float64) {
	h.sum += infVar * h.ck * h.betaHospitalized
}

// AddHospitalizedICU adds an ICU occupant's contribution.
func (h *Hospital) AddHospitalizedICU(infVar float64) {
	h.sum += infVar * h.ck * h.betaICU
}

// Finalize sets lambda = sum: hospitals apply no additional scaling.
func (h *Hospital) Finalize() { h.lambda = h.sum }

// Reset also zeroes the per-step testee count, which is not part of base.
func (h *Hospital) Reset() {
	h.base.Reset()
	h.testingCount = 0
}
