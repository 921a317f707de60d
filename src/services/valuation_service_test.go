package services_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/src/clients/quotes"
	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

func usRateSet() *schemas.RateSet {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	return &schemas.RateSet{
		Tax: schemas.TaxSnapshot{
			Region:    schemas.RegionUS,
			Rates:     *services.DefaultTaxRates(schemas.RegionUS),
			Source:    "static",
			FetchedAt: now,
		},
		Inflation: schemas.InflationSnapshot{
			Region:     schemas.RegionUS,
			AnnualRate: 0.032,
			Source:     "static",
			FetchedAt:  now,
		},
		Currency: schemas.CurrencySnapshot{
			Region:    schemas.RegionUS,
			Base:      "USD",
			USDRate:   1,
			Source:    "identity",
			FetchedAt: now,
		},
	}
}

func TestCalculateRow(t *testing.T) {
	service := services.NewValuationService()
	rates := usRateSet()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should allow negative unrealized P&L with no floor", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-3, 0, 0),
			VestingDate:    now.AddDate(-2, 0, 0),
			VestedQuantity: 100,
			ExercisePrice:  80,
			Status:         models.StatusVested,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 50}

		row := service.CalculateRow(holding, quote, rates, now)
		require.True(t, row.Active)
		assert.InDelta(t, -3000.0, row.UnrealizedPnL, 0.001)
		assert.Zero(t, row.RealizedPnL)
		assert.Zero(t, row.Tax)
		assert.InDelta(t, -3000.0, row.PostTaxPnL, 0.001)
	})

	t.Run("should compute CAGR from the vesting date", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-2, 0, 0),
			VestingDate:    now.AddDate(-2, 0, 0),
			VestedQuantity: 10,
			ExercisePrice:  50,
			Status:         models.StatusExercised,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 80}

		row := service.CalculateRow(holding, quote, rates, now)
		// (80/50)^(1/2) - 1
		assert.InDelta(t, 0.2649, row.CAGR, 0.001)
	})

	t.Run("should short-circuit CAGR to zero on bad denominators", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-2, 0, 0),
			VestingDate:    now.AddDate(-2, 0, 0),
			VestedQuantity: 10,
			ExercisePrice:  0,
			Status:         models.StatusVested,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 80}

		row := service.CalculateRow(holding, quote, rates, now)
		assert.Zero(t, row.CAGR)
		assert.False(t, math.IsNaN(row.CAGR))

		holding.ExercisePrice = 50
		holding.VestingDate = now.AddDate(0, 0, 1)
		row = service.CalculateRow(holding, quote, rates, now)
		assert.Zero(t, row.CAGR)
	})

	t.Run("should report zero everywhere for an unvested holding", func(t *testing.T) {
		holding := models.Holding{
			Ticker:      "AAPL",
			GrantDate:   now.AddDate(-1, 0, 0),
			VestingDate: now.AddDate(1, 0, 0),
			Quantity:    500,
			Status:      models.StatusUnvested,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 80}

		row := service.CalculateRow(holding, quote, rates, now)
		assert.True(t, row.Active)
		assert.Zero(t, row.CostBasis)
		assert.Zero(t, row.CurrentValue)
		assert.Zero(t, row.UnrealizedPnL)
		assert.Zero(t, row.RealizedPnL)
		assert.Zero(t, row.Tax)
		assert.Zero(t, row.CAGR)
	})

	t.Run("should realize gains on the recorded sale price over the full quantity", func(t *testing.T) {
		saleDate := now.AddDate(0, -6, 0)
		salePrice := 120.0
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-4, 0, 0),
			VestingDate:    now.AddDate(-3, 0, 0),
			SaleDate:       &saleDate,
			Quantity:       200,
			VestedQuantity: 150,
			ExercisePrice:  100,
			SalePrice:      &salePrice,
			Status:         models.StatusSold,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 500}

		row := service.CalculateRow(holding, quote, rates, now)
		require.True(t, row.Active)
		assert.InDelta(t, 4000.0, row.RealizedPnL, 0.001)
		assert.Zero(t, row.UnrealizedPnL)
		assert.Zero(t, row.CAGR)
		assert.Greater(t, row.Tax, 0.0)
	})

	t.Run("should fall back to the live price when a sold holding has no sale price", func(t *testing.T) {
		saleDate := now.AddDate(0, -1, 0)
		holding := models.Holding{
			Ticker:        "AAPL",
			GrantDate:     now.AddDate(-4, 0, 0),
			VestingDate:   now.AddDate(-3, 0, 0),
			SaleDate:      &saleDate,
			Quantity:      100,
			ExercisePrice: 100,
			Status:        models.StatusSold,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 110}

		row := service.CalculateRow(holding, quote, rates, now)
		require.True(t, row.Active)
		assert.InDelta(t, 1000.0, row.RealizedPnL, 0.001)
	})

	t.Run("should mark a row inactive when no price resolves", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-2, 0, 0),
			VestingDate:    now.AddDate(-1, 0, 0),
			VestedQuantity: 100,
			ExercisePrice:  80,
			Status:         models.StatusVested,
		}

		row := service.CalculateRow(holding, nil, rates, now)
		assert.False(t, row.Active)
		assert.Zero(t, row.UnrealizedPnL)
		assert.Zero(t, row.Tax)
	})

	t.Run("should flag an unrecognized status instead of guessing", func(t *testing.T) {
		holding := models.Holding{
			Ticker: "AAPL",
			Status: models.HoldingStatus("Pledged"),
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 80}

		row := service.CalculateRow(holding, quote, rates, now)
		assert.False(t, row.Active)
		assert.Equal(t, models.HoldingStatus("Pledged"), row.Status)
	})

	t.Run("should discount post-tax P&L by inflation since the grant date", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-2, 0, 0),
			VestingDate:    now.AddDate(-2, 0, 0),
			VestedQuantity: 100,
			ExercisePrice:  50,
			Status:         models.StatusVested,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 80}

		row := service.CalculateRow(holding, quote, rates, now)
		expected := row.PostTaxPnL / math.Pow(1.032, row.YearsHeld)
		assert.InDelta(t, expected, row.InflationAdjustedPnL, 0.5)
		assert.Less(t, row.InflationAdjustedPnL, row.PostTaxPnL)
	})

	t.Run("should be bit-identical across repeated runs on the same inputs", func(t *testing.T) {
		holding := models.Holding{
			Ticker:         "AAPL",
			GrantDate:      now.AddDate(-3, 0, 0),
			VestingDate:    now.AddDate(-2, 0, 0),
			VestedQuantity: 100,
			ExercisePrice:  80,
			Status:         models.StatusVested,
		}
		quote := &quotes.Quote{Symbol: "AAPL", Price: 95}

		first := service.CalculateRow(holding, quote, rates, now)
		second := service.CalculateRow(holding, quote, rates, now)
		require.Equal(t, first, second)
	})
}

func TestAggregate(t *testing.T) {
	service := services.NewValuationService()
	rates := usRateSet()
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	salePrice := 120.0
	saleDate := now.AddDate(0, -6, 0)
	holdings := []models.Holding{
		{
			Ticker: "AAPL", GrantDate: now.AddDate(-3, 0, 0), VestingDate: now.AddDate(-2, 0, 0),
			VestedQuantity: 100, ExercisePrice: 80, Status: models.StatusVested,
		},
		{
			Ticker: "MSFT", GrantDate: now.AddDate(-4, 0, 0), VestingDate: now.AddDate(-3, 0, 0),
			Quantity: 50, ExercisePrice: 100, SalePrice: &salePrice, SaleDate: &saleDate,
			Status: models.StatusSold,
		},
		{
			Ticker: "NVDA", GrantDate: now.AddDate(-1, 0, 0), VestingDate: now.AddDate(1, 0, 0),
			Quantity: 300, Status: models.StatusUnvested,
		},
	}
	quoteMap := map[string]*quotes.Quote{
		"AAPL": {Symbol: "AAPL", Price: 95},
		"MSFT": {Symbol: "MSFT", Price: 130},
	}

	rows := make([]schemas.RowCalculation, 0, len(holdings))
	for _, holding := range holdings {
		rows = append(rows, service.CalculateRow(holding, quoteMap[holding.Ticker], rates, now))
	}
	totals := service.Aggregate(rows)

	t.Run("should keep total P&L equal to realized plus unrealized", func(t *testing.T) {
		assert.InDelta(t, totals.RealizedPnL+totals.UnrealizedPnL, totals.TotalPnL, 0.0001)
		assert.InDelta(t, 1500.0, totals.UnrealizedPnL, 0.001)
		assert.InDelta(t, 1000.0, totals.RealizedPnL, 0.001)
	})

	t.Run("should weight portfolio CAGR only by vested and exercised cost basis", func(t *testing.T) {
		// One vested row, so the portfolio CAGR is that row's CAGR.
		assert.InDelta(t, rows[0].CAGR, totals.WeightedCAGR, 0.0001)
	})

	t.Run("should exclude inactive rows from every aggregate", func(t *testing.T) {
		inactive := service.CalculateRow(holdings[0], nil, rates, now)
		require.False(t, inactive.Active)

		withInactive := service.Aggregate(append(rows, inactive))
		assert.Equal(t, totals, withInactive)
	})

	t.Run("should report zero CAGR with no vested or exercised rows", func(t *testing.T) {
		soldOnly := service.Aggregate(rows[1:])
		assert.Zero(t, soldOnly.WeightedCAGR)
	})
}
