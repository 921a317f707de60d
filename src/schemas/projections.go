package schemas

import "time"

type RiskTier string

const (
	RiskLow      RiskTier = "Low"
	RiskModerate RiskTier = "Moderate"
	RiskHigh     RiskTier = "High"
)

func (t RiskTier) Valid() bool {
	return t == RiskLow || t == RiskModerate || t == RiskHigh
}

// GoalParams are the user's long-term goal inputs.
type GoalParams struct {
	MonthlyContribution float64  `json:"monthlyContribution"`
	HorizonYears        int      `json:"horizonYears"`
	RiskTolerance       RiskTier `json:"riskTolerance"`
	TargetAmount        float64  `json:"targetAmount"`
	Region              Region   `json:"region"`
}

// SimulationCell is the success probability, in [0,100], for one risk tier
// and horizon combination.
type SimulationCell struct {
	RiskTier           RiskTier `json:"riskTier"`
	HorizonYears       int      `json:"horizonYears"`
	SuccessProbability float64  `json:"successProbability"`
}

type SimulationResult struct {
	Cells []SimulationCell `json:"cells"`
	Runs  int              `json:"runs"`
}

// Allocation is a target asset mix for one region and risk tier; the three
// percentages always sum to 100.
type Allocation struct {
	Equity       float64 `json:"equity"`
	Bonds        float64 `json:"bonds"`
	Alternatives float64 `json:"alternatives"`
	Narrative    string  `json:"narrative"`
}

type ProjectionMetadata struct {
	RequestID   string    `json:"requestId"`
	Region      Region    `json:"region"`
	GeneratedAt time.Time `json:"generatedAt"`
}

type ProjectionReport struct {
	Metadata    ProjectionMetadata `json:"metadata"`
	Simulation  SimulationResult   `json:"simulation"`
	Recommended Allocation         `json:"recommendedAllocation"`
}
