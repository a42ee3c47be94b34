// Package market fetches fiat exchange rates and crypto spot prices from public APIs.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CryptoPrices are USD spot prices
type CryptoPrices struct {
	BTCUSD float64
	ETHUSD float64
}

// CoinGeckoClient for the CoinGecko simple price API
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewCoinGeckoClient creates a new CoinGecko client. An empty baseURL selects the public API.
func NewCoinGeckoClient(baseURL string, log zerolog.Logger) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = defaultCoinGeckoURL
	}
	return &CoinGeckoClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("client", "coingecko").Logger(),
	}
}

// GetPrices fetches BTC and ETH prices in USD.
// A price missing from the response is an error, not a zero.
func (c *CoinGeckoClient) GetPrices(ctx context.Context) (*CryptoPrices, error) {
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin,ethereum&vs_currencies=usd", c.baseURL)
	c.log.Debug().Str("url", url).Msg("Fetching crypto prices")

	var result map[string]map[string]float64
	if err := getJSON(ctx, c.client, url, &result); err != nil {
		return nil, err
	}

	btc, ok := result["bitcoin"]["usd"]
	if !ok {
		return nil, fmt.Errorf("bitcoin price not in response")
	}
	eth, ok := result["ethereum"]["usd"]
	if !ok {
		return nil, fmt.Errorf("ethereum price not in response")
	}

	c.log.Debug().
		Float64("btc_usd", btc).
		Float64("eth_usd", eth).
		Msg("Fetched crypto prices")

	return &CryptoPrices{BTCUSD: btc, ETHUSD: eth}, nil
}

// getJSON issues a GET request and decodes a 200 response into out
func getJSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
