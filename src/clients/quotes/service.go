package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"server/src/config"
	"server/src/utils/requests"
)

type QuotesServiceClientI interface {
	GetQuotes(ctx context.Context, tickers []string) (map[string]Quote, error)
}

type QuotesServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	Token   string
}

// NewClient creates a new instance of QuotesServiceClient
func NewClient(cfg *config.Config) *QuotesServiceClient {
	api := requests.NewExternalAPIService(time.Duration(cfg.ExternalClients.TimeoutSeconds) * time.Second)
	return &QuotesServiceClient{
		API:     api,
		BaseURL: cfg.ExternalClients.Quotes.BaseURL,
		Token:   cfg.ExternalClients.Quotes.Token,
	}
}

// GetQuotes fetches the latest quote for each ticker in one batch call. A
// ticker the upstream does not know is simply absent from the returned map;
// it never fails the whole lookup.
func (c *QuotesServiceClient) GetQuotes(ctx context.Context, tickers []string) (map[string]Quote, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote", c.BaseURL)

	params := url.Values{}
	params.Add("symbols", strings.Join(tickers, ","))

	resp, err := c.API.Get(ctx, endpoint, c.Token, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote service returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quotesResponse getQuotesResponse
	err = json.Unmarshal(responseBody, &quotesResponse)
	if err != nil {
		return nil, err
	}

	if quotesResponse.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote service error: %s", quotesResponse.QuoteResponse.Error.Description)
	}

	result := make(map[string]Quote, len(quotesResponse.QuoteResponse.Result))
	for _, q := range quotesResponse.QuoteResponse.Result {
		if q.RegularMarketPrice <= 0 {
			continue
		}
		result[q.Symbol] = Quote{
			Symbol:        q.Symbol,
			Price:         q.RegularMarketPrice,
			PreviousClose: q.RegularMarketPreviousClose,
		}
	}
	return result, nil
}
