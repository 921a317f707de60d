package services

import (
	"math"
	"time"

	"server/src/clients/quotes"
	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

type ValuationServiceI interface {
	CalculateRow(holding models.Holding, quote *quotes.Quote, rates *schemas.RateSet, now time.Time) schemas.RowCalculation
	Aggregate(rows []schemas.RowCalculation) schemas.PortfolioTotals
}

// ValuationService derives per-holding profit/loss, tax, and growth figures.
// It is a pure computation over its inputs: the holding's status tag drives a
// four-state machine with no implicit transitions.
type ValuationService struct{}

func NewValuationService() *ValuationService {
	return &ValuationService{}
}

// CalculateRow computes the full valuation of one holding. A row whose price
// cannot be resolved (no live quote and, for Sold, no recorded sale price) is
// marked inactive: it still appears in the output but contributes zero to
// every aggregate. An unrecognized status also flags the row instead of
// guessing a treatment.
func (s *ValuationService) CalculateRow(holding models.Holding, quote *quotes.Quote, rates *schemas.RateSet, now time.Time) schemas.RowCalculation {
	row := schemas.RowCalculation{
		Ticker:      holding.Ticker,
		CompanyName: holding.CompanyName,
		Status:      holding.Status,
		GrantDate:   holding.GrantDate,
		SaleDate:    holding.SaleDate,
	}

	if !holding.Status.Valid() {
		return row
	}

	if quote != nil {
		row.CurrentPrice = quote.Price
		row.PreviousClose = quote.PreviousClose
	}

	// Holding period runs from the vesting date to the sale date for Sold
	// rows, otherwise to now. It selects short- vs long-term tax treatment
	// and anchors CAGR.
	periodEnd := now
	if holding.Status == models.StatusSold && holding.SaleDate != nil {
		periodEnd = *holding.SaleDate
	}
	row.HoldingPeriodDays = utils.DaysBetween(holding.VestingDate, periodEnd)
	row.YearsHeld = utils.YearsBetween(holding.VestingDate, periodEnd)

	switch holding.Status {
	case models.StatusUnvested:
		// No shares at risk yet: zero everywhere, but the row is valid.
		row.Active = true
		return row

	case models.StatusVested, models.StatusExercised:
		row.Quantity = holding.VestedQuantity
		row.CostBasis = holding.ExercisePrice * holding.VestedQuantity
		if quote == nil {
			return row
		}
		row.Active = true
		row.CurrentValue = quote.Price * holding.VestedQuantity
		row.UnrealizedPnL = row.CurrentValue - row.CostBasis
		row.Tax = EffectiveTaxAmount(&rates.Tax.Rates, row.UnrealizedPnL, row.HoldingPeriodDays)
		row.CAGR = compoundAnnualGrowth(holding.ExercisePrice, quote.Price, row.YearsHeld)

	case models.StatusSold:
		row.Quantity = holding.Quantity
		row.CostBasis = holding.ExercisePrice * holding.Quantity
		salePrice := 0.0
		if holding.SalePrice != nil && *holding.SalePrice > 0 {
			salePrice = *holding.SalePrice
		} else if quote != nil {
			salePrice = quote.Price
		}
		if salePrice <= 0 {
			return row
		}
		row.Active = true
		row.CurrentValue = salePrice * holding.Quantity
		row.RealizedPnL = row.CurrentValue - row.CostBasis
		row.Tax = EffectiveTaxAmount(&rates.Tax.Rates, row.RealizedPnL, row.HoldingPeriodDays)
		// CAGR is explicitly excluded for liquidated holdings.
	}

	gain := row.UnrealizedPnL + row.RealizedPnL
	row.PostTaxPnL = gain - row.Tax
	row.InflationAdjustedPnL = discountByInflation(row.PostTaxPnL, rates.Inflation.AnnualRate, utils.YearsBetween(holding.GrantDate, now))
	return row
}

// Aggregate sums the active rows into portfolio totals. The weighted CAGR is
// the cost-basis-weighted average over Vested/Exercised rows; Sold and
// Unvested rows carry zero weight.
func (s *ValuationService) Aggregate(rows []schemas.RowCalculation) schemas.PortfolioTotals {
	var totals schemas.PortfolioTotals
	var weightedSum, weightTotal float64

	for _, row := range rows {
		if !row.Active {
			continue
		}
		totals.CostBasis += row.CostBasis
		totals.CurrentValue += row.CurrentValue
		totals.UnrealizedPnL += row.UnrealizedPnL
		totals.RealizedPnL += row.RealizedPnL
		totals.Tax += row.Tax
		totals.PostTaxPnL += row.PostTaxPnL
		totals.InflationAdjustedPnL += row.InflationAdjustedPnL

		if (row.Status == models.StatusVested || row.Status == models.StatusExercised) && row.CostBasis > 0 {
			weightedSum += row.CAGR * row.CostBasis
			weightTotal += row.CostBasis
		}
	}

	totals.TotalPnL = totals.UnrealizedPnL + totals.RealizedPnL
	if weightTotal > 0 {
		totals.WeightedCAGR = weightedSum / weightTotal
	}
	return totals
}

// compoundAnnualGrowth returns (current/initial)^(1/years) - 1, guarding the
// zero and negative denominators to 0 instead of NaN.
func compoundAnnualGrowth(initialPrice, currentPrice, years float64) float64 {
	if initialPrice <= 0 || currentPrice <= 0 || years <= 0 {
		return 0
	}
	return math.Pow(currentPrice/initialPrice, 1/years) - 1
}

// discountByInflation deflates a nominal amount over years at an annual rate.
func discountByInflation(amount, annualRate, years float64) float64 {
	if years <= 0 || annualRate <= 0 {
		return amount
	}
	return amount / math.Pow(1+annualRate, years)
}
