package cache

import (
	"context"
	"sync"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// MemoryRateCache is an in-process rate cache for development and tests
type MemoryRateCache struct {
	mu       sync.RWMutex
	snapshot *domain.RateSnapshot
}

// NewMemoryRateCache creates an empty in-memory rate cache
func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{}
}

// Get returns the cached snapshot or domain.ErrNotFound
func (c *MemoryRateCache) Get(ctx context.Context) (*domain.RateSnapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil {
		return nil, domain.ErrNotFound
	}
	s := *c.snapshot
	return &s, nil
}

// Set replaces the cached snapshot
func (c *MemoryRateCache) Set(ctx context.Context, snapshot *domain.RateSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := *snapshot
	c.snapshot = &s
	return nil
}
