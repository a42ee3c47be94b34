package market

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// Source is recorded on every snapshot fetched by the Provider
const Source = "coingecko+exchangerate-api"

// Provider combines the fiat and crypto clients into one rate snapshot
type Provider struct {
	fiat   *ExchangeRateClient
	crypto *CoinGeckoClient
	now    func() time.Time
	log    zerolog.Logger
}

// NewProvider creates a Provider over the given clients
func NewProvider(fiat *ExchangeRateClient, crypto *CoinGeckoClient, log zerolog.Logger) *Provider {
	return &Provider{
		fiat:   fiat,
		crypto: crypto,
		now:    time.Now,
		log:    log.With().Str("component", "market_provider").Logger(),
	}
}

// Fetch queries both APIs concurrently. Either failing fails the whole fetch,
// so a partial snapshot is never produced.
func (p *Provider) Fetch(ctx context.Context) (*domain.RateSnapshot, error) {
	var (
		usdRate float64
		prices  *CryptoPrices
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rate, err := p.fiat.GetRate(ctx, "USD", "MXN")
		if err != nil {
			return fmt.Errorf("exchange rate: %w", err)
		}
		usdRate = rate
		return nil
	})

	g.Go(func() error {
		pr, err := p.crypto.GetPrices(ctx)
		if err != nil {
			return fmt.Errorf("crypto prices: %w", err)
		}
		prices = pr
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot, err := domain.NewRateSnapshot(usdRate, prices.BTCUSD, prices.ETHUSD, Source, p.now().UTC())
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Str("usd_rate", snapshot.USDRate.String()).
		Str("btc_usd", snapshot.BTCUSD.String()).
		Str("eth_usd", snapshot.ETHUSD.String()).
		Msg("Fetched market rates")

	return snapshot, nil
}
