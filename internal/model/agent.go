// Package model holds the plain-data types of the simulation: Agent, the
// Place variants (Household, School, Workplace, Hospital), and the
// Population container that indexes them by ID. Nothing in this package
// performs I/O, sampling, or logging -- it is the shared vocabulary that
// internal/infection, internal/contribution, internal/transitions, and
// internal/orchestrator all build on.
package model

// MainState is the coarse infection state an Agent is in. Exactly one of
// these holds at any time; the finer-grained flags below (recovering
// without symptoms, dying vs recovering, home-isolated, hospitalized...)
// refine it further.
type MainState int

const (
	// StateSusceptible is the implicit default: none of the infection
	// flags are set.
	StateSusceptible MainState = iota
	StateExposed
	StateSymptomatic
	StateRemoved
)

func (s MainState) String() string {
	switch s {
	case StateSusceptible:
		return "susceptible"
	case StateExposed:
		return "exposed"
	case StateSymptomatic:
		return "symptomatic"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Agent is a single individual tracked by the simulation. Field names
// mirror the original agent.h: household/school/work/hospital membership
// by integer ID (0 or negative means "no membership"), a small cluster of
// boolean flags refining the main state, absolute scheduled event times,
// and the durations used to compute them.
type Agent struct {
	id int

	// Demographics.
	age      int
	student  bool
	working  bool
	x, y     float64

	// Memberships. Zero or negative means "no membership".
	householdID int
	schoolID    int
	workID      int
	hospitalID  int

	worksAtSchool   bool
	worksAtHospital bool

	// isNonCovidPatient marks a hospital patient admitted for a condition
	// other than COVID; such an agent has no household contribution while
	// hospitalized.
	isNonCovidPatient bool

	// Main state and refinements.
	mainState           MainState
	recoveringExposed   bool
	symptomaticNonCovid bool // ILI carrier, not COVID

	// Care path.
	homeIsolated    bool
	hospitalized    bool
	hospitalizedICU bool
	beingTreated    bool

	dying      bool
	recovering bool

	// Testing phase.
	tested                bool
	testedAwaitingTest    bool
	testedAwaitingResults bool
	testedInCar           bool
	testedInHospital      bool
	testedCovidPositive   bool
	testedFalseNegative   bool
	testedFalsePositive   bool
	testedExposed         bool

	// Scheduled absolute times. Zero means "not scheduled".
	latencyEndTime      float64
	infectiousnessStart float64
	deathTime           float64
	recoveryTime        float64
	timeOfTest          float64
	timeOfResults       float64
	ihToHspTime         float64
	ihToIcuTime         float64
	hspToIcuTime        float64
	hspToIhTime         float64
	icuToHspTime        float64

	// Durations, set on entry to a state and used to compute the times above.
	latencyDuration      float64
	onsetToDeathDuration float64
	recoveryDuration     float64

	// Per-agent stochastic weight, drawn once at exposure and reused for
	// every contribution the agent makes for the rest of its infection.
	infVar float64
}

// NewAgent builds an Agent in the default susceptible state.
func NewAgent(id int, age int, student, working bool, x, y float64, householdID, schoolID, workID, hospitalID int, worksAtSchool, worksAtHospital, isNonCovidPatient bool) *Agent {
	return &Agent{
		id:                id,
		age:               age,
		student:           student,
		working:           working,
		x:                 x,
		y:                 y,
		householdID:       householdID,
		schoolID:          schoolID,
		workID:            workID,
		hospitalID:        hospitalID,
		worksAtSchool:     worksAtSchool,
		worksAtHospital:   worksAtHospital,
		isNonCovidPatient: isNonCovidPatient,
		mainState:         StateSusceptible,
		infVar:            1.0,
	}
}

// Getters mirroring agent.h.

func (a *Agent) ID() int             { return a.id }
func (a *Agent) Age() int            { return a.age }
func (a *Agent) Student() bool       { return a.student }
func (a *Agent) Working() bool       { return a.working }
func (a *Agent) X() float64          { return a.x }
func (a *Agent) Y() float64          { return a.y }
func (a *Agent) HouseholdID() int    { return a.householdID }
func (a *Agent) SchoolID() int       { return a.schoolID }
func (a *Agent) WorkID() int         { return a.workID }
func (a *Agent) HospitalID() int     { return a.hospitalID }
func (a *Agent) WorksAtSchool() bool { return a.worksAtSchool }
func (a *Agent) HospitalEmployee() bool { return a.worksAtHospital }
func (a *Agent) HospitalNonCovidPatient() bool { return a.isNonCovidPatient }

func (a *Agent) MainState() MainState { return a.mainState }
func (a *Agent) Susceptible() bool    { return a.mainState == StateSusceptible }
func (a *Agent) Exposed() bool        { return a.mainState == StateExposed }
func (a *Agent) Symptomatic() bool    { return a.mainState == StateSymptomatic }
func (a *Agent) Removed() bool        { return a.mainState == StateRemoved }

func (a *Agent) RecoveringExposed() bool     { return a.recoveringExposed }
func (a *Agent) SymptomaticNonCovid() bool   { return a.symptomaticNonCovid }
func (a *Agent) HomeIsolated() bool          { return a.homeIsolated }
func (a *Agent) Hospitalized() bool          { return a.hospitalized }
func (a *Agent) HospitalizedICU() bool       { return a.hospitalizedICU }
func (a *Agent) BeingTreated() bool          { return a.beingTreated }
func (a *Agent) Dying() bool                 { return a.dying }
func (a *Agent) Recovering() bool            { return a.recovering }

func (a *Agent) Tested() bool                { return a.tested }
func (a *Agent) TestedAwaitingTest() bool    { return a.testedAwaitingTest }
func (a *Agent) TestedAwaitingResults() bool { return a.testedAwaitingResults }
func (a *Agent) TestedInCar() bool           { return a.testedInCar }
func (a *Agent) TestedInHospital() bool      { return a.testedInHospital }
func (a *Agent) TestedCovidPositive() bool   { return a.testedCovidPositive }
func (a *Agent) TestedFalseNegative() bool   { return a.testedFalseNegative }
func (a *Agent) TestedFalsePositive() bool   { return a.testedFalsePositive }
func (a *Agent) TestedExposed() bool         { return a.testedExposed }

func (a *Agent) LatencyEndTime() float64        { return a.latencyEndTime }
func (a *Agent) InfectiousnessStartTime() float64 { return a.infectiousnessStart }
func (a *Agent) TimeOfDeath() float64           { return a.deathTime }
func (a *Agent) RecoveryTime() float64          { return a.recoveryTime }
func (a *Agent) TimeOfTest() float64            { return a.timeOfTest }
func (a *Agent) TimeOfResults() float64         { return a.timeOfResults }
func (a *Agent) IHtoHSPTime() float64           { return a.ihToHspTime }
func (a *Agent) IHtoICUTime() float64           { return a.ihToIcuTime }
func (a *Agent) HSPtoICUTime() float64          { return a.hspToIcuTime }
func (a *Agent) HSPtoIHTime() float64           { return a.hspToIhTime }
func (a *Agent) ICUtoHSPTime() float64          { return a.icuToHspTime }

func (a *Agent) InfectiousnessVariability() float64 { return a.infVar }

// Setters. Kept deliberately narrow (one field, or one small coherent
// group) -- StatesManager composes these into the named canonical
// the named canonical transitions; nothing outside this package should
// need to reach past StatesManager to call them directly.

func (a *Agent) SetHouseholdID(id int) { a.householdID = id }
func (a *Agent) SetAge(v int)          { a.age = v }

func (a *Agent) setMainState(s MainState)          { a.mainState = s }
func (a *Agent) setRecoveringExposed(v bool)       { a.recoveringExposed = v }
func (a *Agent) setSymptomaticNonCovid(v bool)     { a.symptomaticNonCovid = v }
func (a *Agent) setHomeIsolated(v bool)            { a.homeIsolated = v }
func (a *Agent) setHospitalized(v bool)            { a.hospitalized = v }
func (a *Agent) setHospitalizedICU(v bool)         { a.hospitalizedICU = v }
func (a *Agent) setBeingTreated(v bool)            { a.beingTreated = v }
func (a *Agent) setDying(v bool)                   { a.dying = v }
func (a *Agent) setRecovering(v bool)              { a.recovering = v }

func (a *Agent) setTested(v bool)                { a.tested = v }
func (a *Agent) setTestedAwaitingTest(v bool)    { a.testedAwaitingTest = v }
func (a *Agent) setTestedAwaitingResults(v bool) { a.testedAwaitingResults = v }
func (a *Agent) setTestedInCar(v bool)           { a.testedInCar = v }
func (a *Agent) setTestedInHospital(v bool)      { a.testedInHospital = v }
func (a *Agent) setTestedCovidPositive(v bool)   { a.testedCovidPositive = v }
func (a *Agent) setTestedFalseNegative(v bool)   { a.testedFalseNegative = v }
func (a *Agent) setTestedFalsePositive(v bool)   { a.testedFalsePositive = v }
func (a *Agent) setTestedExposed(v bool)         { a.testedExposed = v }

// SetHospitalID assigns the hospital an agent is currently admitted to (or
// 0 when discharged). Exported because admission/discharge are place-roster
// operations owned by Population, not by StatesManager.
func (a *Agent) SetHospitalID(id int) { a.hospitalID = id }

// SetInfVar assigns the infectiousness-variability factor. Called exactly
// once, at exposure.
func (a *Agent) SetInfVar(v float64) { a.infVar = v }

// SetLatencyDuration / SetLatencyEndTime and friends below implement the
// "duration set on entry, end time computed from current time" pattern
// used throughout agent.h.

func (a *Agent) SetLatencyDuration(d float64)        { a.latencyDuration = d }
func (a *Agent) LatencyDuration() float64            { return a.latencyDuration }
func (a *Agent) SetLatencyEndTime(now float64)       { a.latencyEndTime = now + a.latencyDuration }
func (a *Agent) SetInfectiousnessStartTime(t float64) { a.infectiousnessStart = t }

func (a *Agent) SetOnsetToDeathDuration(d float64) { a.onsetToDeathDuration = d }
func (a *Agent) SetDeathTime(now float64)          { a.deathTime = now + a.onsetToDeathDuration }

func (a *Agent) SetRecoveryDuration(d float64) { a.recoveryDuration = d }
func (a *Agent) RecoveryDuration() float64     { return a.recoveryDuration }
func (a *Agent) SetRecoveryTime(now float64)   { a.recoveryTime = now + a.recoveryDuration }

func (a *Agent) SetTimeOfTest(t float64)     { a.timeOfTest = t }
func (a *Agent) SetTimeOfResults(t float64)  { a.timeOfResults = t }
func (a *Agent) SetIHtoHSPTime(t float64)    { a.ihToHspTime = t }
func (a *Agent) SetIHtoICUTime(t float64)    { a.ihToIcuTime = t }
func (a *Agent) SetHSPtoICUTime(t float64)   { a.hspToIcuTime = t }
func (a *Agent) SetHSPtoIHTime(t float64)    { a.hspToIhTime = t }
func (a *Agent) SetICUtoHSPTime(t float64)   { a.icuToHspTime = t }

// ClearTreatmentTimes zeroes every scheduled treatment-transition time.
// Used when an agent's treatment path is recomputed (e.g. after moving
// between ICU and general ward) to avoid a stale time firing later.
func (a *Agent) ClearTreatmentTimes() {
	a.ihToHspTime, a.ihToIcuTime = 0, 0
	a.hspToIcuTime, a.hspToIhTime, a.icuToHspTime = 0, 0, 0
}

// ClearTesting resets every testing-phase flag and scheduled test time,
// used both on a false-negative result (agent returns to normal
// circulation) and when an ILI carrier's false-positive isolation ends.
func (a *Agent) ClearTesting() {
	a.tested = false
	a.testedAwaitingTest = false
	a.testedAwaitingResults = false
	a.testedInCar = false
	a.testedInHospital = false
	a.testedFalseNegative = false
	a.testedFalsePositive = false
	a.testedExposed = false
	a.timeOfTest = 0
	a.timeOfResults = 0
}
