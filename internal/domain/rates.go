package domain

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// RateSnapshot is the set of market rates used for one computation pass.
// It is immutable once fetched.
type RateSnapshot struct {
	USDRate   decimal.Decimal // MXN per USD
	BTCUSD    decimal.Decimal // USD per BTC
	ETHUSD    decimal.Decimal // USD per ETH
	FetchedAt time.Time
	Source    string
}

// NewRateSnapshot builds a snapshot from float64 API values, rejecting zero,
// negative and non-finite rates
func NewRateSnapshot(usdRate, btcUSD, ethUSD float64, source string, fetchedAt time.Time) (*RateSnapshot, error) {
	for _, r := range []struct {
		name  string
		value float64
	}{
		{"usdRate", usdRate},
		{"btcUsd", btcUSD},
		{"ethUsd", ethUSD},
	} {
		if math.IsNaN(r.value) || math.IsInf(r.value, 0) || r.value <= 0 {
			return nil, &InvalidRateError{Rate: r.name, Value: strconv.FormatFloat(r.value, 'g', -1, 64)}
		}
	}

	return &RateSnapshot{
		USDRate:   decimal.NewFromFloat(usdRate),
		BTCUSD:    decimal.NewFromFloat(btcUSD),
		ETHUSD:    decimal.NewFromFloat(ethUSD),
		FetchedAt: fetchedAt,
		Source:    source,
	}, nil
}

// Validate ensures every rate is strictly positive
func (s *RateSnapshot) Validate() error {
	if !s.USDRate.IsPositive() {
		return &InvalidRateError{Rate: "usdRate", Value: s.USDRate.String()}
	}
	if !s.BTCUSD.IsPositive() {
		return &InvalidRateError{Rate: "btcUsd", Value: s.BTCUSD.String()}
	}
	if !s.ETHUSD.IsPositive() {
		return &InvalidRateError{Rate: "ethUsd", Value: s.ETHUSD.String()}
	}
	return nil
}

// IsFresh reports whether the snapshot is younger than ttl at the given instant
func (s *RateSnapshot) IsFresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.FetchedAt) < ttl
}
