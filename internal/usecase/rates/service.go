package rates

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// DefaultTTL is how long a fetched snapshot is served without refetching
const DefaultTTL = time.Hour

// RateService supplies the current rate snapshot
type RateService struct {
	Provider     domain.RateProvider
	Cache        domain.RateCache
	SnapshotRepo domain.RateSnapshotRepository
	TTL          time.Duration

	now func() time.Time
	mu  sync.Mutex // Serialises upstream fetches
	log zerolog.Logger
}

// NewRateService creates a new RateService instance
func NewRateService(
	provider domain.RateProvider,
	cache domain.RateCache,
	snapshotRepo domain.RateSnapshotRepository,
	ttl time.Duration,
	log zerolog.Logger,
) *RateService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RateService{
		Provider:     provider,
		Cache:        cache,
		SnapshotRepo: snapshotRepo,
		TTL:          ttl,
		now:          time.Now,
		log:          log.With().Str("component", "rate_service").Logger(),
	}
}

// GetRates returns the current snapshot
// Logic:
//  1. Fresh cache hit (younger than TTL) -> return it
//  2. Fetch from the upstream APIs -> cache, persist and return it
//  3. Fetch failed -> stale cached snapshot
//  4. Nothing cached -> latest persisted snapshot
//  5. Otherwise domain.ErrRatesUnavailable
func (s *RateService) GetRates(ctx context.Context) (*domain.RateSnapshot, error) {
	if cached := s.cached(ctx); cached != nil && cached.IsFresh(s.now(), s.TTL) {
		return cached, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	cached := s.cached(ctx)
	if cached != nil && cached.IsFresh(s.now(), s.TTL) {
		return cached, nil
	}

	fresh, fetchErr := s.fetchAndStore(ctx)
	if fetchErr == nil {
		return fresh, nil
	}

	if cached != nil {
		s.log.Warn().
			Err(fetchErr).
			Time("fetched_at", cached.FetchedAt).
			Msg("Rate fetch failed, using stale cached rates")
		return cached, nil
	}

	persisted, err := s.SnapshotRepo.GetLatest(ctx)
	if err == nil {
		s.log.Warn().
			Err(fetchErr).
			Time("fetched_at", persisted.FetchedAt).
			Msg("Rate fetch failed, using last persisted rates")
		if err := s.Cache.Set(ctx, persisted); err != nil {
			s.log.Warn().Err(err).Msg("Failed to warm rate cache")
		}
		return persisted, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Error().Err(err).Msg("Failed to load persisted rates")
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrRatesUnavailable, fetchErr)
}

// Refresh fetches new rates unconditionally, bypassing the cache.
// Unlike GetRates it reports fetch failures instead of falling back.
func (s *RateService) Refresh(ctx context.Context) (*domain.RateSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchAndStore(ctx)
}

// cached returns the cached snapshot of any age, nil on a miss
func (s *RateService) cached(ctx context.Context) *domain.RateSnapshot {
	snapshot, err := s.Cache.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Err(err).Msg("Rate cache read failed")
		}
		return nil
	}
	if err := snapshot.Validate(); err != nil {
		s.log.Warn().Err(err).Msg("Ignoring invalid cached rates")
		return nil
	}
	return snapshot
}

func (s *RateService) fetchAndStore(ctx context.Context) (*domain.RateSnapshot, error) {
	snapshot, err := s.Provider.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}

	if err := s.Cache.Set(ctx, snapshot); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache rates")
	}
	if err := s.SnapshotRepo.Add(ctx, snapshot); err != nil {
		s.log.Warn().Err(err).Msg("Failed to persist rates")
	}

	return snapshot, nil
}
