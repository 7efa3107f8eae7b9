package transitions

// Params bundles the timing and probability parameters transitions needs
// beyond what internal/infection.Sampler already encapsulates. Field
// names mirror the parameter-file keys from the external interface
// (spaces removed, camelCased).
type Params struct {
	// FractionExposedTested is the probability a newly exposed agent is
	// scheduled for a test at exposure.
	FractionExposedTested float64
	// FractionTestedInHospital is the probability a scheduled test is
	// taken in a hospital rather than a drive-through site.
	FractionTestedInHospital float64
	// FractionFalseNegative / FractionFalsePositive are the test's error
	// rates.
	FractionFalseNegative float64
	FractionFalsePositive float64

	// TimeExposedToInfectiousness caps how long after exposure an agent
	// can remain non-infectious, even if latency is longer.
	TimeExposedToInfectiousness float64
	TimeDecisionToTest          float64
	TimeTestToResults           float64
	RecoveryTime                float64
	TimeInICU                   float64
	TimeInHospital              float64
	TimeInHospitalAfterICU      float64
	TimeBeforeDeathToICU        float64
}
