package envelope

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/seeder"
)

// EnvelopeInput carries envelope fields. Nil fields keep their current (or default) value.
// DueDate is YYYY-MM-DD; an empty string clears it.
type EnvelopeInput struct {
	Icon     *string
	Color    *string
	Title    *string
	Type     *string
	Val      *decimal.Decimal
	Tot      *decimal.Decimal
	Currency *domain.Currency
	Msg      *string
	Warn     *bool
	DueDate  *string
}

// EnvelopeService handles envelope operations
type EnvelopeService struct {
	EnvelopeRepo domain.EnvelopeRepository
	Seeder       *seeder.ProfileSeeder

	now func() time.Time
}

// NewEnvelopeService creates a new EnvelopeService instance
func NewEnvelopeService(envelopeRepo domain.EnvelopeRepository, profileSeeder *seeder.ProfileSeeder) *EnvelopeService {
	return &EnvelopeService{
		EnvelopeRepo: envelopeRepo,
		Seeder:       profileSeeder,
		now:          time.Now,
	}
}

// ListEnvelopes returns the user's envelopes, oldest first
func (s *EnvelopeService) ListEnvelopes(ctx context.Context, userID uuid.UUID) ([]*domain.Envelope, error) {
	envelopes, err := s.EnvelopeRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list envelopes: %w", err)
	}
	return envelopes, nil
}

// CreateEnvelope creates a new envelope
// Logic:
//  1. Start from the default envelope in the profile's display currency
//  2. Apply any provided fields
//  3. Validate and save
func (s *EnvelopeService) CreateEnvelope(ctx context.Context, userID uuid.UUID, input EnvelopeInput) (*domain.Envelope, error) {
	profile, err := s.Seeder.EnsureProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	env := domain.NewDefaultEnvelope(userID, profile.Currency)
	env.CreatedAt = s.now().UTC()
	if err := apply(env, input); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	if err := s.EnvelopeRepo.Create(ctx, env); err != nil {
		return nil, fmt.Errorf("failed to create envelope: %w", err)
	}
	return env, nil
}

// UpdateEnvelope applies a partial update to an envelope owned by the user
func (s *EnvelopeService) UpdateEnvelope(ctx context.Context, userID, id uuid.UUID, input EnvelopeInput) (*domain.Envelope, error) {
	existing, err := s.EnvelopeRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	env := *existing
	if err := apply(&env, input); err != nil {
		return nil, err
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}

	if err := s.EnvelopeRepo.Update(ctx, &env); err != nil {
		return nil, fmt.Errorf("failed to update envelope: %w", err)
	}
	return &env, nil
}

// DeleteEnvelope removes an envelope owned by the user
func (s *EnvelopeService) DeleteEnvelope(ctx context.Context, userID, id uuid.UUID) error {
	return s.EnvelopeRepo.Delete(ctx, userID, id)
}

func apply(env *domain.Envelope, in EnvelopeInput) error {
	if in.Icon != nil {
		env.Icon = *in.Icon
	}
	if in.Color != nil {
		env.Color = *in.Color
	}
	if in.Title != nil {
		env.Title = strings.TrimSpace(*in.Title)
	}
	if in.Type != nil {
		env.Type = *in.Type
	}
	if in.Val != nil {
		env.Val = *in.Val
	}
	if in.Tot != nil {
		env.Tot = *in.Tot
	}
	if in.Currency != nil {
		env.Currency = *in.Currency
	}
	if in.Msg != nil {
		env.Msg = *in.Msg
	}
	if in.Warn != nil {
		env.Warn = *in.Warn
	}
	if in.DueDate != nil {
		due, err := domain.ParseDueDate(*in.DueDate)
		if err != nil {
			return err
		}
		env.DueDate = due
	}
	return nil
}
