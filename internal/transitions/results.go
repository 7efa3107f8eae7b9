package transitions

// SusceptibleResult reports the outcome of one step's susceptible
// transition attempt.
type SusceptibleResult struct {
	Infected bool
}

// ExposedResult reports the outcome of one step's exposed transition.
type ExposedResult struct {
	RecoveredWithoutSymptoms bool
}

// SymptomaticResult reports the outcome of one step's symptomatic
// transition: at most one of Recovered/Died is true in a step where the
// agent is finally removed from the model.
type SymptomaticResult struct {
	Recovered bool
	Died      bool
}
