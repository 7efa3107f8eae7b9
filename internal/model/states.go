package model

// StatesManager performs the named, atomic flag-cluster updates from
// named, atomic transitions. Every caller that needs to move an Agent between
// canonical configurations goes through here instead of poking individual
// flags, so two callers reaching "exposed, tested, awaiting results" always
// produce byte-identical flag sets.
type StatesManager struct{}

// NewStatesManager returns a ready-to-use StatesManager. It carries no
// state of its own -- every method operates purely on the Agent passed in.
func NewStatesManager() *StatesManager { return &StatesManager{} }

// SetSusceptibleToExposed moves a susceptible agent into the exposed main
// state. Duration/time bookkeeping (latency, infectiousness start,
// inf_var) is the caller's responsibility since it depends on sampler
// draws the states manager does not perform.
func (StatesManager) SetSusceptibleToExposed(a *Agent) {
	a.setMainState(StateExposed)
	a.setRecoveringExposed(false)
}

// SetSusceptibleToExposedNeverSymptomatic is the same transition, but the
// agent is flagged to recover without ever becoming symptomatic.
func (StatesManager) SetSusceptibleToExposedNeverSymptomatic(a *Agent) {
	a.setMainState(StateExposed)
	a.setRecoveringExposed(true)
}

// SetExposedNeverSymptomaticToRemoved closes out an agent that recovered
// without ever developing symptoms.
func (StatesManager) SetExposedNeverSymptomaticToRemoved(a *Agent) {
	a.setMainState(StateRemoved)
	a.setRecoveringExposed(false)
}

// SetExposedToSymptomatic moves an agent from exposed to symptomatic.
// dying/recovering must be set separately by SetDyingSymptomatic or
// SetRecoveringSymptomatic once the sampler has decided the outcome.
func (StatesManager) SetExposedToSymptomatic(a *Agent) {
	a.setMainState(StateSymptomatic)
}

// SetDyingSymptomatic marks a symptomatic agent as headed for death.
func (StatesManager) SetDyingSymptomatic(a *Agent) {
	a.setDying(true)
	a.setRecovering(false)
}

// SetRecoveringSymptomatic marks a symptomatic agent as headed for
// recovery.
func (StatesManager) SetRecoveringSymptomatic(a *Agent) {
	a.setDying(false)
	a.setRecovering(true)
}

// SetHomeIsolation puts an agent into home isolation. Household membership
// is untouched -- isolation only ever withdraws an agent from school,
// workplace, or hospital-employee contribution.
func (StatesManager) SetHomeIsolation(a *Agent) {
	a.setHomeIsolated(true)
}

// ClearHomeIsolation lifts home isolation, e.g. on a false-negative result.
func (StatesManager) ClearHomeIsolation(a *Agent) {
	a.setHomeIsolated(false)
}

// SetWaitingForTestInHospital schedules a test to be taken in a hospital.
func (StatesManager) SetWaitingForTestInHospital(a *Agent, timeOfTest, timeOfResults float64) {
	a.setTested(true)
	a.setTestedAwaitingTest(true)
	a.setTestedInHospital(true)
	a.setTestedInCar(false)
	a.SetTimeOfTest(timeOfTest)
	a.SetTimeOfResults(timeOfResults)
}

// SetWaitingForTestInCar schedules a test to be taken at a drive-through
// site: no hospital contribution results from this branch.
func (StatesManager) SetWaitingForTestInCar(a *Agent, timeOfTest, timeOfResults float64) {
	a.setTested(true)
	a.setTestedAwaitingTest(true)
	a.setTestedInCar(true)
	a.setTestedInHospital(false)
	a.SetTimeOfTest(timeOfTest)
	a.SetTimeOfResults(timeOfResults)
}

// SetExposedWaitingForResults advances an exposed, tested agent from
// "awaiting test" to "awaiting results" and records that this agent was
// tested while still exposed (relevant for retest eligibility at onset).
func (StatesManager) SetExposedWaitingForResults(a *Agent) {
	a.setTestedAwaitingTest(false)
	a.setTestedAwaitingResults(true)
	a.setTestedExposed(true)
}

// SetTestedToAwaitingResults advances any tested agent from "awaiting
// test" to "awaiting results", independent of exposed/symptomatic state.
func (StatesManager) SetTestedToAwaitingResults(a *Agent) {
	a.setTestedAwaitingTest(false)
	a.setTestedAwaitingResults(true)
}

// SetTestedFalseNegative clears the isolation/testing state of an agent
// whose positive infection returned a false-negative result, and returns
// it to normal (non-isolated) circulation.
func (StatesManager) SetTestedFalseNegative(a *Agent) {
	a.ClearTesting()
	a.setTestedFalseNegative(true)
	a.setHomeIsolated(false)
}

// SetTestedFalsePositive marks a (COVID-negative) agent as having received
// a false-positive result; the caller is responsible for the resulting
// home-isolation period.
func (StatesManager) SetTestedFalsePositive(a *Agent) {
	a.setTestedAwaitingTest(false)
	a.setTestedAwaitingResults(false)
	a.setTestedFalsePositive(true)
}

// SetTestedNegative marks a true-negative result (used by the flu branch),
// with no isolation consequence.
func (StatesManager) SetTestedNegative(a *Agent) {
	a.setTestedAwaitingTest(false)
	a.setTestedAwaitingResults(false)
}

// SetTestedCovidPositive marks a true-positive result and begins home
// isolation immediately.
func (StatesManager) SetTestedCovidPositive(a *Agent) {
	a.setTestedAwaitingResults(false)
	a.setTestedCovidPositive(true)
	a.setHomeIsolated(true)
}

// SetHospitalized moves an agent into general-ward hospitalization,
// implicitly lifting home isolation (hospitalized-ICU must always pass
// through hospitalized first, and hospitalized always supersedes IH).
func (StatesManager) SetHospitalized(a *Agent, hospitalID int) {
	a.setHomeIsolated(false)
	a.setHospitalized(true)
	a.setHospitalizedICU(false)
	a.setBeingTreated(true)
	a.SetHospitalID(hospitalID)
}

// SetICURecovering moves a hospitalized, recovering agent into ICU care.
func (StatesManager) SetICURecovering(a *Agent) {
	a.setHospitalizedICU(true)
	a.setRecovering(true)
	a.setDying(false)
}

// SetICUDying moves a hospitalized agent into ICU care with a fatal
// prognosis.
func (StatesManager) SetICUDying(a *Agent) {
	a.setHospitalizedICU(true)
	a.setDying(true)
	a.setRecovering(false)
}

// LeaveICUToHospital moves an agent from ICU back to the general ward,
// satisfying the care-path ordering invariant (ICU -> HSP -> IH).
func (StatesManager) LeaveICUToHospital(a *Agent) {
	a.setHospitalizedICU(false)
}

// SetAnyToRemoved marks any agent -- regardless of current sub-state -- as
// removed, and clears the flags that would otherwise make it eligible for
// further contribution or transition.
func (StatesManager) SetAnyToRemoved(a *Agent) {
	a.setMainState(StateRemoved)
	a.setHomeIsolated(false)
	a.setHospitalized(false)
	a.setHospitalizedICU(false)
	a.setBeingTreated(false)
	a.SetHospitalID(0)
}

// SetFormerFlu marks an ILI carrier as having been swapped out of the flu
// pool (e.g. because it just contracted COVID), so downstream flu-specific
// dispatch no longer applies to it.
func (StatesManager) SetFormerFlu(a *Agent) {
	a.setSymptomaticNonCovid(false)
}

// ResetReturningFlu re-flags a susceptible agent freshly drawn into the
// flu/ILI pool as a replacement for one that was swapped out.
func (StatesManager) ResetReturningFlu(a *Agent) {
	a.setSymptomaticNonCovid(true)
}
