// Package demo builds a small, internally-consistent parameter set and
// synthetic population, shared by cmd/simrunner and cmd/simserver so
// neither has to duplicate the other's world-building logic. A real
// deployment replaces every function here with internal/config.ParseParameters
// and internal/loader reading actual place/agent/age-band files.
package demo

import (
	"github.com/Kylepayen02/ABM-COVID/internal/config"
	"github.com/Kylepayen02/ABM-COVID/internal/infection"
	"github.com/Kylepayen02/ABM-COVID/internal/model"
)

// Parameters returns a demo parameter set suitable for either driver.
func Parameters() config.Parameters {
	return config.Parameters{
		HouseholdTransmissionRate: 0.5,
		HouseholdScalingParameter: 0.8,
		TransmissionRateHomeIso:   0.2,
		SchoolTransmissionRate:    0.3,
		SchoolEmployeeTransRate:   0.3,
		AbsenteeismCorrection:     map[string]float64{"primary": 0.9, "middle": 0.9, "high": 0.9, "college": 0.9, "daycare": 0.9, "work": 0.9},
		WorkplaceTransmissionRate: 0.3,
		WorkAbsenteeismCorrection: 0.9,
		SeverityCorrection:        1.0,

		LatencyLognMean: 1.0, LatencyLognStd: 0.3,
		VariabilityGammaShape: 2.0, VariabilityGammaScale: 1.0,
		OTDLognMean: 2.5, OTDLognStd: 0.4,
		OTHGammaShape: 2.0, OTHGammaScale: 2.0,
		HTDWblShape: 2.0, HTDWblScale: 8.0,

		FractionExposedNeverSymptomatic: 0.3,
		FractionToGetTested:             0.5,
		FractionExposedTested:           0.1,
		FractionTestedInHospitals:       0.5,
		FractionFalseNegative:           0.1,
		FractionFalsePositive:           0.02,
		ProbabilityDeathICU:             0.4,
		FractionWithFlu:                 0.1,

		TimeExposedToInfectiousness: 2.0,
		TimeDecisionToTest:          1.0,
		TimeTestToResults:           2.0,
		RecoveryTime:                10.0,
		TimeInICU:                   7.0,
		TimeInHospital:              5.0,
		TimeInHospitalAfterICU:      4.0,
		TimeBeforeDeathToICU:        2.0,
	}
}

// AgeTable builds a three-band age table with the given young/middle/old
// probabilities, used for the demo mortality, hospitalization, and ICU
// tables alike.
func AgeTable(young, middle, old float64) (*infection.AgeTable, error) {
	return infection.NewAgeTable([]infection.AgeBand{
		{Lo: 0, Hi: 39, P: young},
		{Lo: 40, Hi: 69, P: middle},
		{Lo: 70, Hi: 120, P: old},
	})
}

// Population builds a tiny closed world: numHouseholds households of 4
// agents each, sharing a single workplace and school, with
// numInitiallyInfected agents starting exposed.
func Population(numHouseholds, numInitiallyInfected int) *model.Population {
	pop := model.NewPopulation()

	for i := 1; i <= numHouseholds; i++ {
		pop.Households = append(pop.Households, model.NewHousehold(i, float64(i), 0, 1.0, 0.5, 0.8, 0.2))
	}
	pop.Workplaces = append(pop.Workplaces, model.NewWorkplace(1, 0, 0, 1.0, 0.3, 0.9))
	pop.Schools = append(pop.Schools, model.NewSchool(1, 0, 0, 1.0, model.Primary, 0.3, 0.3, 0.9))

	agentID := 1
	for h := 1; h <= numHouseholds; h++ {
		for m := 0; m < 4; m++ {
			age := 10 + m*20
			student := age < 18
			working := !student
			a := model.NewAgent(agentID, age, student, working, float64(h), 0, h, 1, 1, 0, false, false, false)
			pop.Agents = append(pop.Agents, a)
			agentID++
		}
	}

	states := model.NewStatesManager()
	seeded := 0
	for _, a := range pop.Agents {
		if seeded >= numInitiallyInfected {
			break
		}
		states.SetSusceptibleToExposed(a)
		a.SetInfVar(1.0)
		a.SetLatencyDuration(3.0)
		a.SetLatencyEndTime(0)
		a.SetInfectiousnessStartTime(0)
		seeded++
	}

	for _, h := range pop.Households {
		for _, a := range pop.Agents {
			if a.HouseholdID() == h.ID() {
				h.Register(a.ID(), false)
			}
		}
	}
	for _, a := range pop.Agents {
		if a.SchoolID() > 0 {
			for _, s := range pop.Schools {
				if s.ID() == a.SchoolID() {
					s.Register(a.ID(), false)
				}
			}
		}
		if a.WorkID() > 0 {
			for _, w := range pop.Workplaces {
				if w.ID() == a.WorkID() {
					w.Register(a.ID(), false)
				}
			}
		}
	}
	return pop
}
