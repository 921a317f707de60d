package quotes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"server/src/clients/quotes"
	"server/src/config"
)

func newTestClient(serverURL string) *quotes.QuotesServiceClient {
	cfg := &config.Config{}
	cfg.ExternalClients.Quotes.BaseURL = serverURL
	cfg.ExternalClients.Quotes.Token = "test-token"
	cfg.ExternalClients.TimeoutSeconds = 5
	return quotes.NewClient(cfg)
}

func TestGetQuotes(t *testing.T) {
	t.Run("should batch all tickers into one request", func(t *testing.T) {
		var gotPath, gotSymbols, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotSymbols = r.URL.Query().Get("symbols")
			gotAuth = r.Header.Get("Authorization")
			w.Write([]byte(`{"quoteResponse":{"result":[
				{"symbol":"AAPL","regularMarketPrice":95.5,"regularMarketPreviousClose":94.2},
				{"symbol":"MSFT","regularMarketPrice":160.0,"regularMarketPreviousClose":158.5}
			],"error":null}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.GetQuotes(context.Background(), []string{"AAPL", "MSFT"})
		require.NoError(t, err)

		assert.Equal(t, "/v7/finance/quote", gotPath)
		assert.Equal(t, "AAPL,MSFT", gotSymbols)
		assert.Equal(t, "Bearer test-token", gotAuth)

		require.Len(t, result, 2)
		assert.Equal(t, 95.5, result["AAPL"].Price)
		assert.Equal(t, 94.2, result["AAPL"].PreviousClose)
	})

	t.Run("should omit unknown tickers instead of failing", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"quoteResponse":{"result":[
				{"symbol":"AAPL","regularMarketPrice":95.5}
			],"error":null}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.GetQuotes(context.Background(), []string{"AAPL", "ZZZZ"})
		require.NoError(t, err)

		assert.Len(t, result, 1)
		_, found := result["ZZZZ"]
		assert.False(t, found)
	})

	t.Run("should drop entries without a positive price", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"quoteResponse":{"result":[
				{"symbol":"HALT","regularMarketPrice":0}
			],"error":null}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		result, err := client.GetQuotes(context.Background(), []string{"HALT"})
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("should fail on an upstream error payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"quoteResponse":{"result":null,"error":{"code":"Bad Request","description":"Missing symbols"}}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetQuotes(context.Background(), nil)
		assert.ErrorContains(t, err, "Missing symbols")
	})

	t.Run("should fail on a non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.GetQuotes(context.Background(), []string{"AAPL"})
		assert.Error(t, err)
	})
}
