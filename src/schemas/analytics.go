package schemas

import (
	"time"

	"server/src/models"
)

// RowCalculation is the derived valuation of one holding for one request.
// Inactive rows (no resolvable price) still appear in the output but
// contribute zero to every aggregate.
type RowCalculation struct {
	Ticker               string               `json:"ticker"`
	CompanyName          string               `json:"companyName"`
	Status               models.HoldingStatus `json:"status"`
	Active               bool                 `json:"active"`
	GrantDate            time.Time            `json:"grantDate"`
	SaleDate             *time.Time           `json:"saleDate,omitempty"`
	Quantity             float64              `json:"quantity"`
	CostBasis            float64              `json:"costBasis"`
	CurrentPrice         float64              `json:"currentPrice"`
	PreviousClose        float64              `json:"previousClose,omitempty"`
	CurrentValue         float64              `json:"currentValue"`
	UnrealizedPnL        float64              `json:"unrealizedPnL"`
	RealizedPnL          float64              `json:"realizedPnL"`
	Tax                  float64              `json:"tax"`
	PostTaxPnL           float64              `json:"postTaxPnL"`
	InflationAdjustedPnL float64              `json:"inflationAdjustedPnL"`
	CAGR                 float64              `json:"cagr"`
	YearsHeld            float64              `json:"yearsHeld"`
	HoldingPeriodDays    int                  `json:"holdingPeriodDays"`
}

// PortfolioTotals aggregates active rows for one request. TotalPnL is always
// the sum of realized and unrealized.
type PortfolioTotals struct {
	CostBasis            float64 `json:"costBasis"`
	CurrentValue         float64 `json:"currentValue"`
	UnrealizedPnL        float64 `json:"unrealizedPnL"`
	RealizedPnL          float64 `json:"realizedPnL"`
	TotalPnL             float64 `json:"totalPnL"`
	Tax                  float64 `json:"tax"`
	PostTaxPnL           float64 `json:"postTaxPnL"`
	InflationAdjustedPnL float64 `json:"inflationAdjustedPnL"`
	WeightedCAGR         float64 `json:"weightedCagr"`
}

type YearQuantityPoint struct {
	Year     int     `json:"year"`
	Quantity float64 `json:"quantity"`
}

type MonthPnLPoint struct {
	Month       string  `json:"month"`
	RealizedPnL float64 `json:"realizedPnL"`
}

type YearMetricsPoint struct {
	Year                 int     `json:"year"`
	UnrealizedPnL        float64 `json:"unrealizedPnL"`
	PostTaxPnL           float64 `json:"postTaxPnL"`
	InflationAdjustedPnL float64 `json:"inflationAdjustedPnL"`
}

// ReportSeries holds the time-bucketed series for visualization. Buckets with
// no contributing rows are absent, never zero-filled.
type ReportSeries struct {
	QuantityByYear     []YearQuantityPoint `json:"quantityByYear"`
	RealizedPnLByMonth []MonthPnLPoint     `json:"realizedPnLByMonth"`
	MetricsByYear      []YearMetricsPoint  `json:"metricsByYear"`
}

// ReportMetadata records which rates were actually used, for auditability.
type ReportMetadata struct {
	RequestID          string    `json:"requestId"`
	Region             Region    `json:"region"`
	BaseCurrency       string    `json:"baseCurrency"`
	TaxSource          string    `json:"taxSource"`
	TaxFetchedAt       time.Time `json:"taxFetchedAt"`
	InflationRate      float64   `json:"inflationRate"`
	InflationSource    string    `json:"inflationSource"`
	InflationFetchedAt time.Time `json:"inflationFetchedAt"`
	CurrencyRate       float64   `json:"currencyRate"`
	CurrencySource     string    `json:"currencySource"`
	CurrencyFetchedAt  time.Time `json:"currencyFetchedAt"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// AnalyticsReport is the complete payload returned for one batch of holdings.
type AnalyticsReport struct {
	Metadata ReportMetadata   `json:"metadata"`
	Totals   PortfolioTotals  `json:"totals"`
	Rows     []RowCalculation `json:"rows"`
	Series   ReportSeries     `json:"series"`
}
