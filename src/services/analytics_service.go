package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"server/src/clients/quotes"
	"server/src/models"
	"server/src/schemas"
	"server/src/utils"
)

type AnalyticsServiceI interface {
	GenerateReport(ctx context.Context, holdings []models.Holding) (*schemas.AnalyticsReport, error)
	GenerateProjections(ctx context.Context, holdings []models.Holding, params schemas.GoalParams) (*schemas.ProjectionReport, error)
}

// AnalyticsService orchestrates one analytics request: classify the batch,
// fetch rates and prices concurrently, run the valuation synchronously per
// holding, then aggregate and bucket the results.
type AnalyticsService struct {
	regions    RegionServiceI
	rates      RatesServiceI
	valuation  ValuationServiceI
	series     SeriesServiceI
	simulation SimulationServiceI
	allocation AllocationServiceI
	quotes     quotes.QuotesServiceClientI
}

func NewAnalyticsService(
	regions RegionServiceI,
	rates RatesServiceI,
	valuation ValuationServiceI,
	series SeriesServiceI,
	simulation SimulationServiceI,
	allocation AllocationServiceI,
	quotesClient quotes.QuotesServiceClientI,
) *AnalyticsService {
	return &AnalyticsService{
		regions:    regions,
		rates:      rates,
		valuation:  valuation,
		series:     series,
		simulation: simulation,
		allocation: allocation,
		quotes:     quotesClient,
	}
}

// GenerateReport produces the complete analytics payload for one batch of
// holdings. A mixed-region batch or total rate-provider exhaustion aborts the
// request; a missing price only deactivates its row.
func (s *AnalyticsService) GenerateReport(ctx context.Context, holdings []models.Holding) (*schemas.AnalyticsReport, error) {
	tickers := uniqueTickers(holdings)
	region, err := s.regions.ClassifyBatch(tickers)
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var rateSet *schemas.RateSet
	var quoteMap map[string]quotes.Quote
	var errChan = make(chan error)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rates, err := s.rates.GetRateSet(ctx, region)
		if err != nil {
			errChan <- err
			return
		}
		rateSet = rates
	}()
	go func() {
		defer wg.Done()
		// Price failures are non-fatal: affected rows go inactive.
		resolved, err := s.quotes.GetQuotes(ctx, tickers)
		if err != nil {
			utils.LoggerFromContext(ctx).Warnf("quote lookup failed, rows without prices will be inactive: %v", err)
			return
		}
		quoteMap = resolved
	}()
	go func() {
		wg.Wait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]schemas.RowCalculation, 0, len(holdings))
	for _, holding := range holdings {
		var quote *quotes.Quote
		if q, ok := quoteMap[holding.Ticker]; ok {
			quote = &q
		}
		rows = append(rows, s.valuation.CalculateRow(holding, quote, rateSet, now))
	}

	report := &schemas.AnalyticsReport{
		Metadata: schemas.ReportMetadata{
			RequestID:          uuid.NewString(),
			Region:             region,
			BaseCurrency:       region.BaseCurrency(),
			TaxSource:          rateSet.Tax.Source,
			TaxFetchedAt:       rateSet.Tax.FetchedAt,
			InflationRate:      rateSet.Inflation.AnnualRate,
			InflationSource:    rateSet.Inflation.Source,
			InflationFetchedAt: rateSet.Inflation.FetchedAt,
			CurrencyRate:       rateSet.Currency.USDRate,
			CurrencySource:     rateSet.Currency.Source,
			CurrencyFetchedAt:  rateSet.Currency.FetchedAt,
			GeneratedAt:        now,
		},
		Totals: s.valuation.Aggregate(rows),
		Rows:   rows,
		Series: s.series.BuildSeries(rows),
	}
	return report, nil
}

// GenerateProjections runs the goal simulation grid and the allocation
// recommendation. Initial capital is the cost basis already committed through
// exercised holdings.
func (s *AnalyticsService) GenerateProjections(ctx context.Context, holdings []models.Holding, params schemas.GoalParams) (*schemas.ProjectionReport, error) {
	rateSet, err := s.rates.GetRateSet(ctx, params.Region)
	if err != nil {
		return nil, err
	}

	initialCapital := 0.0
	for _, holding := range holdings {
		if holding.Status == models.StatusExercised {
			initialCapital += holding.ExercisePrice * holding.VestedQuantity
		}
	}

	report := &schemas.ProjectionReport{
		Metadata: schemas.ProjectionMetadata{
			RequestID:   uuid.NewString(),
			Region:      params.Region,
			GeneratedAt: time.Now(),
		},
		Simulation:  s.simulation.RunGrid(params, initialCapital),
		Recommended: s.allocation.Recommend(params.Region, params.RiskTolerance, rateSet),
	}
	return report, nil
}

func uniqueTickers(holdings []models.Holding) []string {
	seen := map[string]bool{}
	tickers := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		if seen[holding.Ticker] {
			continue
		}
		seen[holding.Ticker] = true
		tickers = append(tickers, holding.Ticker)
	}
	return tickers
}
