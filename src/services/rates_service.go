package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"server/src/clients/frankfurter"
	"server/src/clients/openerapi"
	"server/src/clients/taxfeed"
	"server/src/clients/worldbank"
	"server/src/config"
	"server/src/schemas"
	"server/src/utils"
	redis_utils "server/src/utils/redis"
)

// ErrRatesUnavailable is returned when every source in a fallback chain has
// failed and no static fallback is configured. It maps to a 503 at the API
// boundary.
var ErrRatesUnavailable = errors.New("rates temporarily unavailable")

// Cache TTLs per rate kind. Currency moves with the market, tax structures
// change rarely, inflation observations are yearly.
const (
	CurrencyCacheTTL  = 5 * time.Minute
	TaxCacheTTL       = time.Hour
	InflationCacheTTL = 24 * time.Hour
)

// TaxSource is one named fetcher in the tax fallback chain.
type TaxSource struct {
	Name  string
	Fetch func(ctx context.Context, region schemas.Region) (*schemas.TaxRates, error)
}

// ValueSource is one named fetcher in a scalar-rate fallback chain.
type ValueSource struct {
	Name  string
	Fetch func(ctx context.Context, region schemas.Region) (float64, error)
}

type RatesServiceI interface {
	GetTaxRates(ctx context.Context, region schemas.Region) (*schemas.TaxSnapshot, error)
	GetInflationRate(ctx context.Context, region schemas.Region) (*schemas.InflationSnapshot, error)
	GetCurrencyRate(ctx context.Context, region schemas.Region) (*schemas.CurrencySnapshot, error)
	GetRateSet(ctx context.Context, region schemas.Region) (*schemas.RateSet, error)
	Prewarm(ctx context.Context) error
}

type RatesService struct {
	taxSources       []TaxSource
	inflationSources []ValueSource
	currencySources  []ValueSource

	taxCache       *utils.KeyedCache[*schemas.TaxSnapshot]
	inflationCache *utils.KeyedCache[*schemas.InflationSnapshot]
	currencyCache  *utils.KeyedCache[*schemas.CurrencySnapshot]

	// Optional redis mirror of fetched snapshots, for audit and cross-instance
	// reuse. Mirror failures are logged, never propagated.
	mirror *redis_utils.RedisHandler
}

// NewRatesService wires the production fallback chains: remote sources first,
// static constants from config last (when configured).
func NewRatesService(
	cfg *config.Config,
	taxFeedClient taxfeed.TaxFeedServiceClientI,
	worldBankClient worldbank.WorldBankServiceClientI,
	frankfurterClient frankfurter.FrankfurterServiceClientI,
	openERAPIClient openerapi.OpenERAPIServiceClientI,
	mirror *redis_utils.RedisHandler,
) *RatesService {
	taxSources := []TaxSource{
		{
			Name: "taxfeed",
			Fetch: func(ctx context.Context, region schemas.Region) (*schemas.TaxRates, error) {
				return taxFeedClient.GetTaxRates(ctx, region)
			},
		},
	}
	if cfg.Fallbacks.StaticTaxRates {
		taxSources = append(taxSources, TaxSource{
			Name: "static",
			Fetch: func(_ context.Context, region schemas.Region) (*schemas.TaxRates, error) {
				return DefaultTaxRates(region), nil
			},
		})
	}

	inflationSources := []ValueSource{
		{
			Name: "worldbank",
			Fetch: func(ctx context.Context, region schemas.Region) (float64, error) {
				percent, err := worldBankClient.GetLatestInflation(ctx, region.CountryCode())
				if err != nil {
					return 0, err
				}
				return percent / 100, nil
			},
		},
	}
	if staticInflation := staticInflationFor(cfg); staticInflation != nil {
		inflationSources = append(inflationSources, ValueSource{
			Name: "static",
			Fetch: func(_ context.Context, region schemas.Region) (float64, error) {
				return staticInflation(region)
			},
		})
	}

	currencySources := []ValueSource{
		{
			Name: "frankfurter",
			Fetch: func(ctx context.Context, region schemas.Region) (float64, error) {
				return frankfurterClient.GetLatestRate(ctx, utils.CurrencyUSD, region.BaseCurrency())
			},
		},
		{
			Name: "open-er-api",
			Fetch: func(ctx context.Context, region schemas.Region) (float64, error) {
				return openERAPIClient.GetLatestRate(ctx, utils.CurrencyUSD, region.BaseCurrency())
			},
		},
	}
	if cfg.Fallbacks.CurrencyUSDINR > 0 {
		staticRate := cfg.Fallbacks.CurrencyUSDINR
		currencySources = append(currencySources, ValueSource{
			Name: "static",
			Fetch: func(_ context.Context, region schemas.Region) (float64, error) {
				if region != schemas.RegionIndia {
					return 0, fmt.Errorf("no static currency rate for region %s", region)
				}
				return staticRate, nil
			},
		})
	}

	return NewRatesServiceFromSources(taxSources, inflationSources, currencySources, mirror)
}

// NewRatesServiceFromSources builds a rates service over explicit chains,
// letting tests substitute deterministic sources.
func NewRatesServiceFromSources(
	taxSources []TaxSource,
	inflationSources []ValueSource,
	currencySources []ValueSource,
	mirror *redis_utils.RedisHandler,
) *RatesService {
	return &RatesService{
		taxSources:       taxSources,
		inflationSources: inflationSources,
		currencySources:  currencySources,
		taxCache:         utils.NewKeyedCache[*schemas.TaxSnapshot](),
		inflationCache:   utils.NewKeyedCache[*schemas.InflationSnapshot](),
		currencyCache:    utils.NewKeyedCache[*schemas.CurrencySnapshot](),
		mirror:           mirror,
	}
}

func staticInflationFor(cfg *config.Config) func(schemas.Region) (float64, error) {
	if cfg.Fallbacks.InflationIndia <= 0 && cfg.Fallbacks.InflationUS <= 0 {
		return nil
	}
	india := cfg.Fallbacks.InflationIndia
	us := cfg.Fallbacks.InflationUS
	return func(region schemas.Region) (float64, error) {
		var percent float64
		if region == schemas.RegionIndia {
			percent = india
		} else {
			percent = us
		}
		if percent <= 0 {
			return 0, fmt.Errorf("no static inflation rate for region %s", region)
		}
		return percent / 100, nil
	}
}

// GetTaxRates returns the tax structure snapshot for a region, fetching it
// through the fallback chain on cache miss.
func (s *RatesService) GetTaxRates(ctx context.Context, region schemas.Region) (*schemas.TaxSnapshot, error) {
	if snapshot, ok := s.taxCache.Get(string(region)); ok {
		return snapshot, nil
	}

	logger := utils.LoggerFromContext(ctx)
	for _, source := range s.taxSources {
		rates, err := source.Fetch(ctx, region)
		if err != nil {
			logger.WithField("source", source.Name).Warnf("tax source failed for %s: %v", region, err)
			continue
		}
		if !validTaxRates(region, rates) {
			logger.WithField("source", source.Name).Warnf("tax source returned invalid structure for %s", region)
			continue
		}
		snapshot := &schemas.TaxSnapshot{
			Region:    region,
			Rates:     *rates,
			Source:    source.Name,
			FetchedAt: time.Now(),
		}
		s.taxCache.Set(string(region), snapshot, TaxCacheTTL)
		s.mirrorSnapshot(ctx, schemas.RateKindTax, region, snapshot, TaxCacheTTL)
		return snapshot, nil
	}
	return nil, fmt.Errorf("%w: tax rates for region %s", ErrRatesUnavailable, region)
}

// GetInflationRate returns the annual inflation snapshot for a region.
func (s *RatesService) GetInflationRate(ctx context.Context, region schemas.Region) (*schemas.InflationSnapshot, error) {
	if snapshot, ok := s.inflationCache.Get(string(region)); ok {
		return snapshot, nil
	}

	logger := utils.LoggerFromContext(ctx)
	for _, source := range s.inflationSources {
		rate, err := source.Fetch(ctx, region)
		if err != nil || rate <= 0 {
			logger.WithField("source", source.Name).Warnf("inflation source failed for %s: %v", region, err)
			continue
		}
		snapshot := &schemas.InflationSnapshot{
			Region:     region,
			AnnualRate: rate,
			Source:     source.Name,
			FetchedAt:  time.Now(),
		}
		s.inflationCache.Set(string(region), snapshot, InflationCacheTTL)
		s.mirrorSnapshot(ctx, schemas.RateKindInflation, region, snapshot, InflationCacheTTL)
		return snapshot, nil
	}
	return nil, fmt.Errorf("%w: inflation rate for region %s", ErrRatesUnavailable, region)
}

// GetCurrencyRate returns the USD conversion snapshot for a region's base
// currency. The US is its own base, so its rate is the identity and needs no
// network call.
func (s *RatesService) GetCurrencyRate(ctx context.Context, region schemas.Region) (*schemas.CurrencySnapshot, error) {
	if snapshot, ok := s.currencyCache.Get(string(region)); ok {
		return snapshot, nil
	}

	if region.BaseCurrency() == utils.CurrencyUSD {
		snapshot := &schemas.CurrencySnapshot{
			Region:    region,
			Base:      utils.CurrencyUSD,
			USDRate:   1,
			Source:    "identity",
			FetchedAt: time.Now(),
		}
		s.currencyCache.Set(string(region), snapshot, CurrencyCacheTTL)
		return snapshot, nil
	}

	logger := utils.LoggerFromContext(ctx)
	for _, source := range s.currencySources {
		rate, err := source.Fetch(ctx, region)
		if err != nil || rate <= 0 {
			logger.WithField("source", source.Name).Warnf("currency source failed for %s: %v", region, err)
			continue
		}
		snapshot := &schemas.CurrencySnapshot{
			Region:    region,
			Base:      region.BaseCurrency(),
			USDRate:   rate,
			Source:    source.Name,
			FetchedAt: time.Now(),
		}
		s.currencyCache.Set(string(region), snapshot, CurrencyCacheTTL)
		s.mirrorSnapshot(ctx, schemas.RateKindCurrency, region, snapshot, CurrencyCacheTTL)
		return snapshot, nil
	}
	return nil, fmt.Errorf("%w: currency rate for region %s", ErrRatesUnavailable, region)
}

// GetRateSet fetches the three snapshots a valuation needs concurrently; none
// depends on another's result.
func (s *RatesService) GetRateSet(ctx context.Context, region schemas.Region) (*schemas.RateSet, error) {
	var wg sync.WaitGroup
	var rateSet schemas.RateSet
	var errChan = make(chan error)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot, err := s.GetTaxRates(ctx, region)
		if err != nil {
			errChan <- err
			return
		}
		rateSet.Tax = *snapshot
	}()
	go func() {
		defer wg.Done()
		snapshot, err := s.GetInflationRate(ctx, region)
		if err != nil {
			errChan <- err
			return
		}
		rateSet.Inflation = *snapshot
	}()
	go func() {
		defer wg.Done()
		snapshot, err := s.GetCurrencyRate(ctx, region)
		if err != nil {
			errChan <- err
			return
		}
		rateSet.Currency = *snapshot
	}()
	go func() {
		wg.Wait()
		close(errChan)
	}()

	if err := <-errChan; err != nil {
		return nil, err
	}
	return &rateSet, nil
}

// Prewarm fetches every rate kind for every region so user requests mostly
// hit cache. Used by the worker's cron loop.
func (s *RatesService) Prewarm(ctx context.Context) error {
	logger := utils.LoggerFromContext(ctx)
	var lastErr error
	for _, region := range []schemas.Region{schemas.RegionIndia, schemas.RegionUS} {
		if _, err := s.GetRateSet(ctx, region); err != nil {
			logger.Warnf("prewarm failed for region %s: %v", region, err)
			lastErr = err
		}
	}
	return lastErr
}

func (s *RatesService) mirrorSnapshot(ctx context.Context, kind schemas.RateKind, region schemas.Region, snapshot interface{}, ttl time.Duration) {
	if s.mirror == nil {
		return
	}
	key := fmt.Sprintf("rates:%s:%s", kind, region)
	if err := s.mirror.Set(ctx, key, snapshot, ttl); err != nil {
		utils.LoggerFromContext(ctx).Warnf("failed to mirror %s snapshot: %v", kind, err)
	}
}

func validTaxRates(region schemas.Region, rates *schemas.TaxRates) bool {
	if rates == nil {
		return false
	}
	if region == schemas.RegionIndia {
		return len(rates.Slabs) > 0 && rates.CessRate >= 0
	}
	return len(rates.ShortTermBrackets) > 0 && rates.LongTermRate > 0
}
