package openerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"server/src/config"
	"server/src/utils/requests"
)

type OpenERAPIServiceClientI interface {
	GetLatestRate(ctx context.Context, base, symbol string) (float64, error)
}

type OpenERAPIServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of OpenERAPIServiceClient
func NewClient(cfg *config.Config) *OpenERAPIServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.TimeoutSeconds) * time.Second)
	return &OpenERAPIServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.OpenERAPI.BaseURL,
	}
}

// GetLatestRate fetches the latest conversion rate from base into symbol.
func (c *OpenERAPIServiceClient) GetLatestRate(ctx context.Context, base, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/v6/latest/%s", c.BaseURL, base)

	resp, err := c.API.Get(ctx, endpoint, "", nil)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("open.er-api returned status %d", resp.StatusCode)
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

	if latestResponse.Result != "success" {
		return 0, fmt.Errorf("open.er-api error: %s", latestResponse.ErrorType)
	}

	rate, ok := latestResponse.Rates[symbol]
	if !ok {
		return 0, fmt.Errorf("open.er-api response missing rate for %s", symbol)
	}
	return rate, nil
}
