package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"server/src/config"
	"server/src/utils/requests"
)

// CPIIndicatorID is the annual consumer-price inflation indicator (percent).
const CPIIndicatorID = "FP.CPI.TOTL.ZG"

type WorldBankServiceClientI interface {
	GetLatestInflation(ctx context.Context, countryCode string) (float64, error)
}

type WorldBankServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of WorldBankServiceClient
func NewClient(cfg *config.Config) *WorldBankServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.TimeoutSeconds) * time.Second)
	return &WorldBankServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.WorldBank.BaseURL,
	}
}

// GetLatestInflation fetches the most recent annual CPI inflation observation
// for a country, returned as a percentage (5.5 for 5.5%).
func (c *WorldBankServiceClient) GetLatestInflation(ctx context.Context, countryCode string) (float64, error) {
	endpoint := fmt.Sprintf("%s/v2/country/%s/indicator/%s", c.BaseURL, countryCode, CPIIndicatorID)

	params := url.Values{}
	params.Add("format", "json")
	params.Add("mrnev", "1")
	params.Add("per_page", "1")

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("world bank returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	// The payload is a two-element array: metadata first, observations second.
	var raw []json.RawMessage
	err = json.Unmarshal(responseBody, &raw)
	if err != nil {
		return 0, err
	}
	if len(raw) < 2 {
		return 0, fmt.Errorf("world bank response missing data block")
	}

	var points []IndicatorPoint
	err = json.Unmarshal(raw[1], &points)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 || points[0].Value == nil {
		return 0, fmt.Errorf("world bank has no inflation observation for %s", countryCode)
	}

	return *points[0].Value, nil
}
