package services

import (
	"fmt"

	"server/src/schemas"
)

type allocationMix struct {
	equity       float64
	bonds        float64
	alternatives float64
}

// Static (region, risk tier) rule table. Every row sums to 100.
var allocationTable = map[schemas.Region]map[schemas.RiskTier]allocationMix{
	schemas.RegionIndia: {
		schemas.RiskLow:      {equity: 30, bonds: 60, alternatives: 10},
		schemas.RiskModerate: {equity: 55, bonds: 35, alternatives: 10},
		schemas.RiskHigh:     {equity: 70, bonds: 15, alternatives: 15},
	},
	schemas.RegionUS: {
		schemas.RiskLow:      {equity: 35, bonds: 55, alternatives: 10},
		schemas.RiskModerate: {equity: 60, bonds: 30, alternatives: 10},
		schemas.RiskHigh:     {equity: 75, bonds: 10, alternatives: 15},
	},
}

type AllocationServiceI interface {
	Recommend(region schemas.Region, tier schemas.RiskTier, rates *schemas.RateSet) schemas.Allocation
}

// AllocationService maps region and risk tolerance to a target asset mix.
// The narrative re-derives every displayed figure from the resolved rate
// snapshots so wording never drifts from the numbers actually used.
type AllocationService struct{}

func NewAllocationService() *AllocationService {
	return &AllocationService{}
}

func (s *AllocationService) Recommend(region schemas.Region, tier schemas.RiskTier, rates *schemas.RateSet) schemas.Allocation {
	mix := allocationTable[region][tier]

	inflationPct := rates.Inflation.AnnualRate * 100
	taxPct := marginalGainsRate(&rates.Tax.Rates) * 100

	narrative := fmt.Sprintf(
		"A %s-risk allocation for the %s market targets %.0f%% equity, %.0f%% bonds and %.0f%% alternatives. "+
			"With inflation running at %.1f%% annually, the equity share is sized to keep real returns positive, "+
			"while gains face a marginal tax rate near %.1f%% in %s terms.",
		tier, region, mix.equity, mix.bonds, mix.alternatives,
		inflationPct, taxPct, rates.Currency.Base,
	)

	return schemas.Allocation{
		Equity:       mix.equity,
		Bonds:        mix.bonds,
		Alternatives: mix.alternatives,
		Narrative:    narrative,
	}
}

// marginalGainsRate summarizes the snapshot into one representative rate: the
// top slab for India's progressive model, the long-term-plus-state rate for
// the US.
func marginalGainsRate(rates *schemas.TaxRates) float64 {
	if rates.Region == schemas.RegionIndia {
		if len(rates.Slabs) == 0 {
			return 0
		}
		top := rates.Slabs[len(rates.Slabs)-1].Rate
		return top * (1 + rates.CessRate)
	}
	return rates.LongTermRate + rates.StateRate
}
