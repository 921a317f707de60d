package frankfurter

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

type FrankfurterServiceClientI interface {
	GetLatestRate(ctx context.Context, base, symbol string) (float64, error)
}

type FrankfurterServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of FrankfurterServiceClient
func NewClient(cfg *config.Config) *FrankfurterServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.TimeoutSeconds) * time.Second)
	return &FrankfurterServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.Frankfurter.BaseURL,
	}
}

// GetLatestRate fetches the latest conversion rate from base into symbol.
func (c *FrankfurterServiceClient) GetLatestRate(ctx context.Context, base, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/latest", c.BaseURL)

	params := url.Values{}
	params.Add("from", base)
	params.Add("to", symbol)

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("frankfurter returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var latestResponse GetLatestResponse
	err = json.Unmarshal(responseBody, &latestResponse)
	if err != nil {
		return 0, err
	}

	rate, ok := latestResponse.Rates[symbol]
	if !ok {
		return 0, fmt.Errorf("frankfurter response missing rate for %s", symbol)
	}
	return rate, nil
}
