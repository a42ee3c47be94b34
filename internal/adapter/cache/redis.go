// Package cache stores the current rate snapshot for the rate service.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// DefaultKey is the Redis key holding the current snapshot
const DefaultKey = "umbral:rates:current"

// rateRecord is the msgpack layout of a cached snapshot
type rateRecord struct {
	USDRate   string `msgpack:"usd_rate"`
	BTCUSD    string `msgpack:"btc_usd"`
	ETHUSD    string `msgpack:"eth_usd"`
	FetchedAt int64  `msgpack:"fetched_at"` // Unix milliseconds
	Source    string `msgpack:"source"`
}

// RedisRateCache keeps the snapshot in Redis without expiry so it can serve as a stale fallback
type RedisRateCache struct {
	client *redis.Client
	key    string
}

// NewRedisRateCache creates a Redis-backed rate cache
func NewRedisRateCache(client *redis.Client, key string) *RedisRateCache {
	if key == "" {
		key = DefaultKey
	}
	return &RedisRateCache{client: client, key: key}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// Get returns the cached snapshot regardless of its age.
// Returns domain.ErrNotFound when nothing is cached.
func (c *RedisRateCache) Get(ctx context.Context) (*domain.RateSnapshot, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read rate cache: %w", err)
	}
	return decodeSnapshot(data)
}

// Set replaces the cached snapshot
func (c *RedisRateCache) Set(ctx context.Context, snapshot *domain.RateSnapshot) error {
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write rate cache: %w", err)
	}
	return nil
}

func encodeSnapshot(s *domain.RateSnapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&rateRecord{
		USDRate:   s.USDRate.String(),
		BTCUSD:    s.BTCUSD.String(),
		ETHUSD:    s.ETHUSD.String(),
		FetchedAt: s.FetchedAt.UnixMilli(),
		Source:    s.Source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode rate snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (*domain.RateSnapshot, error) {
	var rec rateRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode rate snapshot: %w", err)
	}

	usdRate, err := decimal.NewFromString(rec.USDRate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse usd rate: %w", err)
	}
	btcUSD, err := decimal.NewFromString(rec.BTCUSD)
	if err != nil {
		return nil, fmt.Errorf("failed to parse btc price: %w", err)
	}
	ethUSD, err := decimal.NewFromString(rec.ETHUSD)
	if err != nil {
		return nil, fmt.Errorf("failed to parse eth price: %w", err)
	}

	return &domain.RateSnapshot{
		USDRate:   usdRate,
		BTCUSD:    btcUSD,
		ETHUSD:    ethUSD,
		FetchedAt: time.UnixMilli(rec.FetchedAt).UTC(),
		Source:    rec.Source,
	}, nil
}
