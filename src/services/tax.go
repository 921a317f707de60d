package services

import (
	"server/src/schemas"
	"server/src/utils"
)

// DefaultTaxRates returns the embedded static tax structure for a region,
// used as the last link of the tax fallback chain.
func DefaultTaxRates(region schemas.Region) *schemas.TaxRates {
	if region == schemas.RegionIndia {
		return &schemas.TaxRates{
			Region: schemas.RegionIndia,
			Slabs: []schemas.TaxBracket{
				{Threshold: 0, Rate: 0},
				{Threshold: 250000, Rate: 0.05},
				{Threshold: 500000, Rate: 0.20},
				{Threshold: 1000000, Rate: 0.30},
			},
			SurchargeBrackets: []schemas.TaxBracket{
				{Threshold: 5000000, Rate: 0.10},
				{Threshold: 10000000, Rate: 0.15},
			},
			CessRate: 0.04,
		}
	}
	return &schemas.TaxRates{
		Region: schemas.RegionUS,
		ShortTermBrackets: []schemas.TaxBracket{
			{Threshold: 0, Rate: 0.10},
			{Threshold: 11600, Rate: 0.12},
			{Threshold: 47150, Rate: 0.22},
			{Threshold: 100525, Rate: 0.24},
			{Threshold: 191950, Rate: 0.32},
			{Threshold: 243725, Rate: 0.35},
			{Threshold: 609350, Rate: 0.37},
		},
		LongTermRate:  0.15,
		StateRate:     0.05,
		NIITRate:      0.038,
		NIITThreshold: 200000,
	}
}

// EffectiveTaxAmount computes the tax owed on a gain under the
// region-appropriate model. India taxes the gain through progressive slabs
// plus surcharge and cess; the US applies short- or long-term treatment
// selected by the holding period (long-term at 365 days, inclusive), plus a
// flat state rate and NIIT above its threshold. Non-positive gains owe
// nothing.
func EffectiveTaxAmount(rates *schemas.TaxRates, gain float64, holdingDays int) float64 {
	if gain <= 0 || rates == nil {
		return 0
	}
	if rates.Region == schemas.RegionIndia {
		return indiaTaxAmount(rates, gain)
	}
	return usTaxAmount(rates, gain, holdingDays)
}

func indiaTaxAmount(rates *schemas.TaxRates, gain float64) float64 {
	tax := progressiveTax(rates.Slabs, gain)

	// Surcharge is a percentage of the tax itself, stepped by gain size.
	surchargeRate := 0.0
	for _, bracket := range rates.SurchargeBrackets {
		if gain > bracket.Threshold {
			surchargeRate = bracket.Rate
		}
	}
	tax += tax * surchargeRate
	tax += tax * rates.CessRate
	return tax
}

func usTaxAmount(rates *schemas.TaxRates, gain float64, holdingDays int) float64 {
	var federal float64
	if utils.IsLongTermHolding(holdingDays) {
		federal = gain * rates.LongTermRate
	} else {
		federal = progressiveTax(rates.ShortTermBrackets, gain)
	}

	tax := federal + gain*rates.StateRate
	if gain > rates.NIITThreshold {
		tax += (gain - rates.NIITThreshold) * rates.NIITRate
	}
	return tax
}

// progressiveTax applies marginal brackets (ascending thresholds) to amount.
func progressiveTax(brackets []schemas.TaxBracket, amount float64) float64 {
	tax := 0.0
	for i, bracket := range brackets {
		if amount <= bracket.Threshold {
			break
		}
		upper := amount
		if i+1 < len(brackets) && brackets[i+1].Threshold < amount {
			upper = brackets[i+1].Threshold
		}
		tax += (upper - bracket.Threshold) * bracket.Rate
	}
	return tax
}
