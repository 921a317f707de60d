package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/src/models"
	"server/src/schemas"
	"server/src/services"
)

func TestBuildSeries(t *testing.T) {
	service := services.NewSeriesService()

	grant2021 := time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC)
	grant2023 := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	saleJan := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	saleMar := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	rows := []schemas.RowCalculation{
		{
			Ticker: "AAPL", Status: models.StatusVested, Active: true,
			GrantDate: grant2021, Quantity: 100,
			UnrealizedPnL: 1500, PostTaxPnL: 1200, InflationAdjustedPnL: 1100,
		},
		{
			Ticker: "MSFT", Status: models.StatusExercised, Active: true,
			GrantDate: grant2021, Quantity: 40,
			UnrealizedPnL: 500, PostTaxPnL: 400, InflationAdjustedPnL: 380,
		},
		{
			Ticker: "NVDA", Status: models.StatusSold, Active: true,
			GrantDate: grant2023, SaleDate: &saleJan, Quantity: 30,
			RealizedPnL: 900, PostTaxPnL: 700, InflationAdjustedPnL: 680,
		},
		{
			Ticker: "GOOG", Status: models.StatusSold, Active: true,
			GrantDate: grant2023, SaleDate: &saleMar, Quantity: 10,
			RealizedPnL: -200, PostTaxPnL: -200, InflationAdjustedPnL: -190,
		},
		{
			Ticker: "TSLA", Status: models.StatusVested, Active: false,
			GrantDate: grant2023, Quantity: 999, UnrealizedPnL: 99999,
		},
	}

	series := service.BuildSeries(rows)

	t.Run("should bucket quantities by grant year in ascending order", func(t *testing.T) {
		require.Len(t, series.QuantityByYear, 2)
		assert.Equal(t, schemas.YearQuantityPoint{Year: 2021, Quantity: 140}, series.QuantityByYear[0])
		assert.Equal(t, schemas.YearQuantityPoint{Year: 2023, Quantity: 40}, series.QuantityByYear[1])
	})

	t.Run("should bucket realized P&L by sale month for sold rows only", func(t *testing.T) {
		require.Len(t, series.RealizedPnLByMonth, 2)
		assert.Equal(t, schemas.MonthPnLPoint{Month: "2026-01", RealizedPnL: 900}, series.RealizedPnLByMonth[0])
		assert.Equal(t, schemas.MonthPnLPoint{Month: "2026-03", RealizedPnL: -200}, series.RealizedPnLByMonth[1])
	})

	t.Run("should sum the metric series per grant year", func(t *testing.T) {
		require.Len(t, series.MetricsByYear, 2)
		assert.Equal(t, 2021, series.MetricsByYear[0].Year)
		assert.InDelta(t, 2000.0, series.MetricsByYear[0].UnrealizedPnL, 0.001)
		assert.InDelta(t, 1600.0, series.MetricsByYear[0].PostTaxPnL, 0.001)
		assert.InDelta(t, 1480.0, series.MetricsByYear[0].InflationAdjustedPnL, 0.001)
	})

	t.Run("should leave inactive rows out of every bucket", func(t *testing.T) {
		for _, point := range series.QuantityByYear {
			assert.NotEqual(t, 999.0, point.Quantity)
		}
		for _, point := range series.MetricsByYear {
			assert.Less(t, point.UnrealizedPnL, 90000.0)
		}
	})

	t.Run("should produce empty series for no active rows", func(t *testing.T) {
		empty := service.BuildSeries([]schemas.RowCalculation{{Active: false}})
		assert.Empty(t, empty.QuantityByYear)
		assert.Empty(t, empty.RealizedPnLByMonth)
		assert.Empty(t, empty.MetricsByYear)
	})
}
