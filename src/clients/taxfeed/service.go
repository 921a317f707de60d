package taxfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"server/src/config"
	"server/src/schemas"
	"server/src/utils/requests"
)

type TaxFeedServiceClientI interface {
	GetTaxRates(ctx context.Context, region schemas.Region) (*schemas.TaxRates, error)
}

type TaxFeedServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of TaxFeedServiceClient
func NewClient(cfg *config.Config) *TaxFeedServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.TimeoutSeconds) * time.Second)
	return &TaxFeedServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.TaxFeed.BaseURL,
	}
}

// GetTaxRates fetches the published tax-rate document for a region.
func (c *TaxFeedServiceClient) GetTaxRates(ctx context.Context, region schemas.Region) (*schemas.TaxRates, error) {
	endpoint := fmt.Sprintf("%s/rates/%s.json", c.BaseURL, strings.ToLower(string(region)))

	resp, err := c.API.Get(ctx, endpoint, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tax feed returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var ratesResponse GetTaxRatesResponse
	err = json.Unmarshal(responseBody, &ratesResponse)
	if err != nil {
		return nil, err
	}

	rates := ratesResponse.TaxRates
	rates.Region = region
	return &rates, nil
}
