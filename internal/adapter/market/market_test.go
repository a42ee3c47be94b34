package market

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/umbral-backend/internal/domain"
)

func newFiatServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/USD", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newCryptoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExchangeRateClient_GetRate(t *testing.T) {
	srv := newFiatServer(t, http.StatusOK, `{"base":"USD","rates":{"MXN":18.5,"EUR":0.92}}`)
	client := NewExchangeRateClient(srv.URL, zerolog.Nop())

	rate, err := client.GetRate(context.Background(), "USD", "MXN")

	require.NoError(t, err)
	assert.Equal(t, 18.5, rate)
}

func TestExchangeRateClient_SameCurrency(t *testing.T) {
	client := NewExchangeRateClient("http://127.0.0.1:0", zerolog.Nop())

	rate, err := client.GetRate(context.Background(), "USD", "USD")

	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestExchangeRateClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		errMsg string
	}{
		{"missing MXN", http.StatusOK, `{"rates":{"EUR":0.92}}`, "rate not found for USD->MXN"},
		{"server error", http.StatusInternalServerError, `oops`, "API returned status 500"},
		{"malformed body", http.StatusOK, `{"rates":`, "failed to parse response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFiatServer(t, tt.status, tt.body)
			client := NewExchangeRateClient(srv.URL, zerolog.Nop())

			_, err := client.GetRate(context.Background(), "USD", "MXN")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCoinGeckoClient_GetPrices(t *testing.T) {
	srv := newCryptoServer(t, http.StatusOK, `{"bitcoin":{"usd":65000},"ethereum":{"usd":3500.5}}`)
	client := NewCoinGeckoClient(srv.URL, zerolog.Nop())

	prices, err := client.GetPrices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 65000.0, prices.BTCUSD)
	assert.Equal(t, 3500.5, prices.ETHUSD)
}

func TestCoinGeckoClient_MissingPrice(t *testing.T) {
	srv := newCryptoServer(t, http.StatusOK, `{"bitcoin":{"usd":65000}}`)
	client := NewCoinGeckoClient(srv.URL, zerolog.Nop())

	_, err := client.GetPrices(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ethereum price not in response")
}

func TestProvider_Fetch(t *testing.T) {
	fiat := newFiatServer(t, http.StatusOK, `{"rates":{"MXN":18.5}}`)
	crypto := newCryptoServer(t, http.StatusOK, `{"bitcoin":{"usd":65000},"ethereum":{"usd":3500}}`)
	provider := NewProvider(NewExchangeRateClient(fiat.URL, zerolog.Nop()), NewCoinGeckoClient(crypto.URL, zerolog.Nop()), zerolog.Nop())
	fixed := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return fixed }

	snapshot, err := provider.Fetch(context.Background())

	require.NoError(t, err)
	assert.True(t, snapshot.USDRate.Equal(decimal.RequireFromString("18.5")))
	assert.True(t, snapshot.BTCUSD.Equal(decimal.NewFromInt(65000)))
	assert.True(t, snapshot.ETHUSD.Equal(decimal.NewFromInt(3500)))
	assert.Equal(t, fixed, snapshot.FetchedAt)
	assert.Equal(t, Source, snapshot.Source)
}

func TestProvider_FetchFailsWhenEitherAPIFails(t *testing.T) {
	fiat := newFiatServer(t, http.StatusOK, `{"rates":{"MXN":18.5}}`)
	crypto := newCryptoServer(t, http.StatusTooManyRequests, `rate limited`)
	provider := NewProvider(NewExchangeRateClient(fiat.URL, zerolog.Nop()), NewCoinGeckoClient(crypto.URL, zerolog.Nop()), zerolog.Nop())

	_, err := provider.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "crypto prices")
}

func TestProvider_FetchRejectsZeroRate(t *testing.T) {
	fiat := newFiatServer(t, http.StatusOK, `{"rates":{"MXN":0}}`)
	crypto := newCryptoServer(t, http.StatusOK, `{"bitcoin":{"usd":65000},"ethereum":{"usd":3500}}`)
	provider := NewProvider(NewExchangeRateClient(fiat.URL, zerolog.Nop()), NewCoinGeckoClient(crypto.URL, zerolog.Nop()), zerolog.Nop())

	_, err := provider.Fetch(context.Background())

	var rateErr *domain.InvalidRateError
	require.True(t, errors.As(err, &rateErr))
	assert.Equal(t, "usdRate", rateErr.Rate)
}
