// Package memory provides in-process repositories for development and tests.
// Records are copied on the way in and out so callers never share state with the store.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// Store holds all in-memory records
type Store struct {
	mu        sync.RWMutex
	profiles  map[uuid.UUID]domain.Profile
	envelopes map[uuid.UUID]domain.Envelope
	accounts  map[uuid.UUID]domain.Account
	snapshots []domain.RateSnapshot
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		profiles:  make(map[uuid.UUID]domain.Profile),
		envelopes: make(map[uuid.UUID]domain.Envelope),
		accounts:  make(map[uuid.UUID]domain.Account),
	}
}

// profileRepository implements domain.ProfileRepository
type profileRepository struct{ s *Store }

// NewProfileRepository creates a profile repository backed by the store
func NewProfileRepository(s *Store) domain.ProfileRepository {
	return &profileRepository{s: s}
}

func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile for user %s: %w", userID, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.profiles[p.UserID] = *p
	return nil
}

// envelopeRepository implements domain.EnvelopeRepository
type envelopeRepository struct{ s *Store }

// NewEnvelopeRepository creates an envelope repository backed by the store
func NewEnvelopeRepository(s *Store) domain.EnvelopeRepository {
	return &envelopeRepository{s: s}
}

func (r *envelopeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Envelope, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	env, ok := r.s.envelopes[id]
	if !ok || env.UserID != userID {
		return nil, fmt.Errorf("envelope %s: %w", id, domain.ErrNotFound)
	}
	return copyEnvelope(env), nil
}

func (r *envelopeRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Envelope, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	envelopes := []*domain.Envelope{}
	for _, env := range r.s.envelopes {
		if env.UserID == userID {
			envelopes = append(envelopes, copyEnvelope(env))
		}
	}
	slices.SortFunc(envelopes, func(a, b *domain.Envelope) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return envelopes, nil
}

func (r *envelopeRepository) Create(ctx context.Context, env *domain.Envelope) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.envelopes[env.ID]; exists {
		return fmt.Errorf("envelope %s already exists", env.ID)
	}
	r.s.envelopes[env.ID] = *copyEnvelope(*env)
	return nil
}

func (r *envelopeRepository) Update(ctx context.Context, env *domain.Envelope) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.envelopes[env.ID]
	if !ok || existing.UserID != env.UserID {
		return fmt.Errorf("envelope %s: %w", env.ID, domain.ErrNotFound)
	}
	updated := *copyEnvelope(*env)
	updated.CreatedAt = existing.CreatedAt
	r.s.envelopes[env.ID] = updated
	return nil
}

func (r *envelopeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	env, ok := r.s.envelopes[id]
	if !ok || env.UserID != userID {
		return fmt.Errorf("envelope %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.envelopes, id)
	return nil
}

// accountRepository implements domain.AccountRepository
type accountRepository struct{ s *Store }

// NewAccountRepository creates an account repository backed by the store
func NewAccountRepository(s *Store) domain.AccountRepository {
	return &accountRepository{s: s}
}

func (r *accountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	acc, ok := r.s.accounts[id]
	if !ok || acc.UserID != userID {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return copyAccount(acc), nil
}

func (r *accountRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	accounts := []*domain.Account{}
	for _, acc := range r.s.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, copyAccount(acc))
		}
	}
	slices.SortFunc(accounts, func(a, b *domain.Account) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return accounts, nil
}

func (r *accountRepository) Create(ctx context.Context, acc *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.accounts[acc.ID]; exists {
		return fmt.Errorf("account %s already exists", acc.ID)
	}
	r.s.accounts[acc.ID] = *copyAccount(*acc)
	return nil
}

func (r *accountRepository) Update(ctx context.Context, acc *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.accounts[acc.ID]
	if !ok || existing.UserID != acc.UserID {
		return fmt.Errorf("account %s: %w", acc.ID, domain.ErrNotFound)
	}
	updated := *copyAccount(*acc)
	updated.CreatedAt = existing.CreatedAt
	r.s.accounts[acc.ID] = updated
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	acc, ok := r.s.accounts[id]
	if !ok || acc.UserID != userID {
		return fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	delete(r.s.accounts, id)
	return nil
}

// rateSnapshotRepository implements domain.RateSnapshotRepository
type rateSnapshotRepository struct{ s *Store }

// NewRateSnapshotRepository creates a rate snapshot repository backed by the store
func NewRateSnapshotRepository(s *Store) domain.RateSnapshotRepository {
	return &rateSnapshotRepository{s: s}
}

func (r *rateSnapshotRepository) Add(ctx context.Context, snapshot *domain.RateSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.snapshots = append(r.s.snapshots, *snapshot)
	return nil
}

func (r *rateSnapshotRepository) GetLatest(ctx context.Context) (*domain.RateSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if len(r.s.snapshots) == 0 {
		return nil, fmt.Errorf("no rate snapshot stored: %w", domain.ErrNotFound)
	}
	latest := slices.MaxFunc(r.s.snapshots, func(a, b domain.RateSnapshot) int {
		return a.FetchedAt.Compare(b.FetchedAt)
	})
	return &latest, nil
}

func copyEnvelope(env domain.Envelope) *domain.Envelope {
	if env.DueDate != nil {
		due := *env.DueDate
		env.DueDate = &due
	}
	return &env
}

func copyAccount(acc domain.Account) *domain.Account {
	if acc.APY != nil {
		apy := *acc.APY
		acc.APY = &apy
	}
	return &acc
}
