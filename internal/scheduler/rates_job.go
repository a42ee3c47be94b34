package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// RateRefresher forces a fetch of fresh market rates
type RateRefresher interface {
	Refresh(ctx context.Context) (*domain.RateSnapshot, error)
}

// RefreshRatesJob keeps the rate cache and the persisted snapshot warm
type RefreshRatesJob struct {
	rates   RateRefresher
	timeout time.Duration
	log     zerolog.Logger
}

// NewRefreshRatesJob creates a new rate refresh job
func NewRefreshRatesJob(rates RateRefresher, log zerolog.Logger) *RefreshRatesJob {
	return &RefreshRatesJob{
		rates:   rates,
		timeout: 30 * time.Second,
		log:     log.With().Str("job", "refresh_rates").Logger(),
	}
}

// Name returns the job name
func (j *RefreshRatesJob) Name() string {
	return "refresh_rates"
}

// Run fetches and stores a new rate snapshot
func (j *RefreshRatesJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	snapshot, err := j.rates.Refresh(ctx)
	if err != nil {
		return err
	}

	j.log.Info().
		Str("usd_rate", snapshot.USDRate.String()).
		Str("btc_usd", snapshot.BTCUSD.String()).
		Str("eth_usd", snapshot.ETHUSD.String()).
		Msg("Market rates refreshed")
	return nil
}
