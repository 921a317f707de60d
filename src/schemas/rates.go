package schemas

import "time"

type RateKind string

const (
	RateKindTax       RateKind = "tax"
	RateKindInflation RateKind = "inflation"
	RateKindCurrency  RateKind = "currency"
)

// TaxBracket is one progressive bracket: the marginal rate applied to the
// portion of income above Threshold.
type TaxBracket struct {
	Threshold float64 `json:"threshold"`
	Rate      float64 `json:"rate"`
}

// TaxRates is the region-appropriate tax structure. India uses progressive
// slabs plus a surcharge ladder and cess; the US uses short-term federal
// brackets, a flat long-term rate, a flat state rate, and NIIT above a
// threshold. Only the fields of the owning region are populated.
type TaxRates struct {
	Region Region `json:"region"`

	// India model
	Slabs             []TaxBracket `json:"slabs,omitempty"`
	SurchargeBrackets []TaxBracket `json:"surchargeBrackets,omitempty"`
	CessRate          float64      `json:"cessRate,omitempty"`

	// US model
	ShortTermBrackets []TaxBracket `json:"shortTermBrackets,omitempty"`
	LongTermRate      float64      `json:"longTermRate,omitempty"`
	StateRate         float64      `json:"stateRate,omitempty"`
	NIITRate          float64      `json:"niitRate,omitempty"`
	NIITThreshold     float64      `json:"niitThreshold,omitempty"`
}

// TaxSnapshot is an immutable, timestamped tax structure for one region.
type TaxSnapshot struct {
	Region    Region    `json:"region"`
	Rates     TaxRates  `json:"rates"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// InflationSnapshot holds the annual inflation rate as a fraction (0.055 for
// 5.5%).
type InflationSnapshot struct {
	Region     Region    `json:"region"`
	AnnualRate float64   `json:"annualRate"`
	Source     string    `json:"source"`
	FetchedAt  time.Time `json:"fetchedAt"`
}

// CurrencySnapshot holds the conversion rate from USD into the region's base
// currency (1.0 for the US itself).
type CurrencySnapshot struct {
	Region    Region    `json:"region"`
	Base      string    `json:"base"`
	USDRate   float64   `json:"usdRate"`
	Source    string    `json:"source"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// RateSet bundles the three snapshots a valuation request needs.
type RateSet struct {
	Tax       TaxSnapshot       `json:"tax"`
	Inflation InflationSnapshot `json:"inflation"`
	Currency  CurrencySnapshot  `json:"currency"`
}
