package services

import (
	"math"
	"math/rand"
	"time"

	"server/src/schemas"
)

// RandomSource supplies uniform draws in [0,1). Production uses a time-seeded
// math/rand generator; tests inject a seeded one for reproducible runs.
type RandomSource interface {
	Float64() float64
}

type riskProfile struct {
	mean   float64
	stddev float64
}

var riskProfiles = map[schemas.RiskTier]riskProfile{
	schemas.RiskLow:      {mean: 0.06, stddev: 0.05},
	schemas.RiskModerate: {mean: 0.10, stddev: 0.12},
	schemas.RiskHigh:     {mean: 0.14, stddev: 0.18},
}

var simulationHorizons = []int{5, 10, 15, 20}

const DefaultSimulationRuns = 1000

type SimulationServiceI interface {
	RunGrid(params schemas.GoalParams, initialCapital float64) schemas.SimulationResult
}

// SimulationService estimates the probability of reaching a wealth goal by
// running stochastic growth paths over a grid of risk tiers and horizons.
type SimulationService struct {
	rng  RandomSource
	runs int
}

func NewSimulationService(rng RandomSource, runs int) *SimulationService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if runs <= 0 {
		runs = DefaultSimulationRuns
	}
	return &SimulationService{rng: rng, runs: runs}
}

// RunGrid simulates every risk tier against every horizon, regardless of the
// user's own tolerance, so the response shows the full 12-cell trade-off.
func (s *SimulationService) RunGrid(params schemas.GoalParams, initialCapital float64) schemas.SimulationResult {
	tiers := []schemas.RiskTier{schemas.RiskLow, schemas.RiskModerate, schemas.RiskHigh}

	result := schemas.SimulationResult{
		Cells: make([]schemas.SimulationCell, 0, len(tiers)*len(simulationHorizons)),
		Runs:  s.runs,
	}
	for _, tier := range tiers {
		profile := riskProfiles[tier]
		for _, horizon := range simulationHorizons {
			result.Cells = append(result.Cells, schemas.SimulationCell{
				RiskTier:           tier,
				HorizonYears:       horizon,
				SuccessProbability: s.simulateCell(profile, horizon, params, initialCapital),
			})
		}
	}
	return result
}

func (s *SimulationService) simulateCell(profile riskProfile, years int, params schemas.GoalParams, initialCapital float64) float64 {
	annualContribution := params.MonthlyContribution * 12
	contributed := initialCapital + annualContribution*float64(years)

	// The baseline target scales the contributed capital by a horizon factor;
	// the user's explicit goal overrides it only when larger.
	target := contributed * targetMultiplier(years)
	if params.TargetAmount > target {
		target = params.TargetAmount
	}

	successes := 0
	for run := 0; run < s.runs; run++ {
		capital := initialCapital
		for y := 0; y < years; y++ {
			annualReturn := profile.mean + profile.stddev*s.normalVariate()
			capital = (capital + annualContribution) * (1 + annualReturn)
		}
		if capital >= target {
			successes++
		}
	}
	return math.Round(float64(successes)/float64(s.runs)*100*100) / 100
}

func (s *SimulationService) normalVariate() float64 {
	return BoxMuller(s.rng.Float64(), s.rng.Float64())
}

// BoxMuller transforms two independent uniform draws in [0,1) into one
// standard normal variate.
func BoxMuller(u1, u2 float64) float64 {
	if u1 <= 0 {
		u1 = 1e-12
	}
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func targetMultiplier(years int) float64 {
	switch {
	case years <= 7:
		return 1.2
	case years <= 12:
		return 1.3
	default:
		return 1.4
	}
}
