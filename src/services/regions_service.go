package services

import (
	"fmt"
	"sort"
	"strings"

	"server/src/schemas"
)

// MixedRegionError rejects a batch whose tickers span more than one market
// region. A single report cannot mix two currencies and tax regimes, so the
// caller must fix the input instead of the engine picking a majority.
type MixedRegionError struct {
	TickersByRegion map[schemas.Region][]string
}

func (e *MixedRegionError) Error() string {
	parts := make([]string, 0, len(e.TickersByRegion))
	regions := make([]string, 0, len(e.TickersByRegion))
	for region := range e.TickersByRegion {
		regions = append(regions, string(region))
	}
	sort.Strings(regions)
	for _, region := range regions {
		parts = append(parts, fmt.Sprintf("%s: %s", region, strings.Join(e.TickersByRegion[schemas.Region(region)], ", ")))
	}
	return "holdings span multiple market regions (" + strings.Join(parts, "; ") + ")"
}

var indiaSuffixes = []string{".NS", ".BO"}

var indiaPrefixes = []string{"NSE:", "BSE:"}

var usPrefixes = []string{"NYSE:", "NASDAQ:", "AMEX:"}

// Curated symbol sets for tickers carrying no exchange qualifier.
var knownIndiaSymbols = map[string]bool{
	"RELIANCE": true, "TCS": true, "INFY": true, "HDFCBANK": true,
	"ICICIBANK": true, "SBIN": true, "WIPRO": true, "HCLTECH": true,
	"BHARTIARTL": true, "ITC": true, "LT": true, "KOTAKBANK": true,
	"AXISBANK": true, "BAJFINANCE": true, "MARUTI": true, "TATAMOTORS": true,
	"TATASTEEL": true, "ASIANPAINT": true, "TITAN": true, "SUNPHARMA": true,
}

var knownUSSymbols = map[string]bool{
	"AAPL": true, "MSFT": true, "GOOGL": true, "GOOG": true, "AMZN": true,
	"META": true, "NVDA": true, "TSLA": true, "NFLX": true, "ORCL": true,
	"ADBE": true, "CRM": true, "INTC": true, "AMD": true, "IBM": true,
	"UBER": true, "ABNB": true, "SHOP": true, "SQ": true, "PLTR": true,
}

type RegionServiceI interface {
	ClassifyTicker(ticker string) schemas.Region
	ClassifyBatch(tickers []string) (schemas.Region, error)
}

type RegionService struct{}

func NewRegionService() *RegionService {
	return &RegionService{}
}

// ClassifyTicker maps one ticker symbol to its market region. Matching order:
// exchange suffix, exchange prefix, curated symbol set, then default to US
// when the symbol carries no qualifier at all.
func (s *RegionService) ClassifyTicker(ticker string) schemas.Region {
	symbol := strings.ToUpper(strings.TrimSpace(ticker))

	for _, suffix := range indiaSuffixes {
		if strings.HasSuffix(symbol, suffix) {
			return schemas.RegionIndia
		}
	}
	for _, prefix := range indiaPrefixes {
		if strings.HasPrefix(symbol, prefix) {
			return schemas.RegionIndia
		}
	}
	for _, prefix := range usPrefixes {
		if strings.HasPrefix(symbol, prefix) {
			return schemas.RegionUS
		}
	}
	if knownIndiaSymbols[symbol] {
		return schemas.RegionIndia
	}
	if knownUSSymbols[symbol] {
		return schemas.RegionUS
	}
	return schemas.RegionUS
}

// ClassifyBatch classifies every ticker and validates they all belong to the
// same region. A mixed batch fails with the per-region breakdown.
func (s *RegionService) ClassifyBatch(tickers []string) (schemas.Region, error) {
	if len(tickers) == 0 {
		return "", fmt.Errorf("no tickers to classify")
	}

	byRegion := map[schemas.Region][]string{}
	for _, ticker := range tickers {
		region := s.ClassifyTicker(ticker)
		byRegion[region] = append(byRegion[region], ticker)
	}

	if len(byRegion) > 1 {
		return "", &MixedRegionError{TickersByRegion: byRegion}
	}

	for region := range byRegion {
		return region, nil
	}
	return "", fmt.Errorf("no tickers to classify")
}
