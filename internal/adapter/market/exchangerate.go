package market

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultExchangeRateURL = "https://api.exchangerate-api.com/v4/latest"

// ExchangeRateClient for exchangerate-api.com
type ExchangeRateClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewExchangeRateClient creates a new exchangerate-api.com client. An empty baseURL selects the public API.
func NewExchangeRateClient(baseURL string, log zerolog.Logger) *ExchangeRateClient {
	if baseURL == "" {
		baseURL = defaultExchangeRateURL
	}
	return &ExchangeRateClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "exchangerate-api").Logger(),
	}
}

// GetRate fetches how many units of toCurrency one unit of fromCurrency buys
func (c *ExchangeRateClient) GetRate(ctx context.Context, fromCurrency, toCurrency string) (float64, error) {
	if fromCurrency == toCurrency {
		return 1.0, nil
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, fromCurrency)
	c.log.Debug().Str("url", url).Msg("Fetching rates")

	var result struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := getJSON(ctx, c.client, url, &result); err != nil {
		return 0, err
	}

	rate, exists := result.Rates[toCurrency]
	if !exists {
		return 0, fmt.Errorf("rate not found for %s->%s", fromCurrency, toCurrency)
	}

	c.log.Debug().
		Str("from", fromCurrency).
		Str("to", toCurrency).
		Float64("rate", rate).
		Msg("Fetched rate")

	return rate, nil
}
