package services

import (
	"sort"

	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

type SeriesServiceI interface {
	BuildSeries(rows []schemas.RowCalculation) schemas.ReportSeries
}

// SeriesService buckets row calculations into calendar series for
// visualization. Only active rows contribute; buckets with no contributing
// rows are absent from the output rather than zero-filled.
type SeriesService struct{}

func NewSeriesService() *SeriesService {
	return &SeriesService{}
}

func (s *SeriesService) BuildSeries(rows []schemas.RowCalculation) schemas.ReportSeries {
	quantityByYear := map[int]float64{}
	metricsByYear := map[int]*schemas.YearMetricsPoint{}
	realizedByMonth := map[string]float64{}

	for _, row := range rows {
		if !row.Active {
			continue
		}

		year := row.GrantDate.Year()
		quantityByYear[year] += row.Quantity

		point, ok := metricsByYear[year]
		if !ok {
			point = &schemas.YearMetricsPoint{Year: year}
			metricsByYear[year] = point
		}
		point.UnrealizedPnL += row.UnrealizedPnL
		point.PostTaxPnL += row.PostTaxPnL
		point.InflationAdjustedPnL += row.InflationAdjustedPnL

		if row.Status == models.StatusSold && row.SaleDate != nil {
			month := row.SaleDate.Format(utils.MonthKeyLayout)
			realizedByMonth[month] += row.RealizedPnL
		}
	}

	series := schemas.ReportSeries{
		QuantityByYear:     make([]schemas.YearQuantityPoint, 0, len(quantityByYear)),
		RealizedPnLByMonth: make([]schemas.MonthPnLPoint, 0, len(realizedByMonth)),
		MetricsByYear:      make([]schemas.YearMetricsPoint, 0, len(metricsByYear)),
	}

	for year, quantity := range quantityByYear {
		series.QuantityByYear = append(series.QuantityByYear, schemas.YearQuantityPoint{Year: year, Quantity: quantity})
	}
	sort.Slice(series.QuantityByYear, func(i, j int) bool {
		return series.QuantityByYear[i].Year < series.QuantityByYear[j].Year
	})

	for _, point := range metricsByYear {
		series.MetricsByYear = append(series.MetricsByYear, *point)
	}
	sort.Slice(series.MetricsByYear, func(i, j int) bool {
		return series.MetricsByYear[i].Year < series.MetricsByYear[j].Year
	})

	for month, pnl := range realizedByMonth {
		series.RealizedPnLByMonth = append(series.RealizedPnLByMonth, schemas.MonthPnLPoint{Month: month, RealizedPnL: pnl})
	}
	sort.Slice(series.RealizedPnLByMonth, func(i, j int) bool {
		return series.RealizedPnLByMonth[i].Month < series.RealizedPnLByMonth[j].Month
	})

	return series
}
