package domain

import (
	"context"

	"github.com/google/uuid"
)

// ProfileRepository defines the interface for profile persistence operations
type ProfileRepository interface {
	// Get retrieves the profile of a user
	// Returns ErrNotFound if the user has no profile yet
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// Upsert creates or replaces the profile of a user
	Upsert(ctx context.Context, profile *Profile) error
}

// EnvelopeRepository defines the interface for envelope persistence operations
type EnvelopeRepository interface {
	// GetByID retrieves an envelope owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Envelope, error)

	// List retrieves every envelope of a user, oldest first
	List(ctx context.Context, userID uuid.UUID) ([]*Envelope, error)

	// Create creates a new envelope
	Create(ctx context.Context, envelope *Envelope) error

	// Update replaces an existing envelope
	Update(ctx context.Context, envelope *Envelope) error

	// Delete removes an envelope owned by userID
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account owned by userID
	GetByID(ctx context.Context, userID, id uuid.UUID) (*Account, error)

	// List retrieves every account of a user, oldest first
	List(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// Update replaces an existing account
	Update(ctx context.Context, account *Account) error

	// Delete removes an account owned by userID
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// RateSnapshotRepository persists fetched rate snapshots as the last-known-good fallback
type RateSnapshotRepository interface {
	// Add stores a new snapshot
	Add(ctx context.Context, snapshot *RateSnapshot) error

	// GetLatest retrieves the most recently fetched snapshot
	// Returns ErrNotFound if none has ever been stored
	GetLatest(ctx context.Context) (*RateSnapshot, error)
}

// RateCache holds the current snapshot with its fetch time.
// Get returns the cached snapshot regardless of age; freshness is decided by the caller.
type RateCache interface {
	Get(ctx context.Context) (*RateSnapshot, error)
	Set(ctx context.Context, snapshot *RateSnapshot) error
}

// RateProvider fetches live rates from the upstream market APIs
type RateProvider interface {
	Fetch(ctx context.Context) (*RateSnapshot, error)
}

// RateSource supplies the snapshot used for one computation pass.
// Returns ErrRatesUnavailable when no snapshot of any age can be produced.
type RateSource interface {
	GetRates(ctx context.Context) (*RateSnapshot, error)
}

// TextGenerator is the hosted LLM behind the advisor
type TextGenerator interface {
	// Enabled reports whether the generator is configured
	Enabled() bool

	// Generate sends the conversation and returns the model reply
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// ChatRole identifies the author of a chat message
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of an advisor conversation
type ChatMessage struct {
	Role ChatRole
	Text string
}

// GenerateRequest is a prompt for the TextGenerator
type GenerateRequest struct {
	Model             string // Empty selects the generator default
	SystemInstruction string
	Messages          []ChatMessage
}
