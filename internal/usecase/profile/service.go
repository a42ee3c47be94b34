package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/seeder"
	"github.com/simaogato/umbral-backend/internal/usecase/valuation"
)

// UpdateProfileInput is a partial profile update. Nil fields are left unchanged.
// Monetary fields are in the display currency the profile had before the update.
type UpdateProfileInput struct {
	Name             *string
	Avatar           *string
	Currency         *domain.Currency
	MonthlyIncome    *decimal.Decimal
	FirstMillionGoal *decimal.Decimal
	NetWorth         *decimal.Decimal
	Preferences      *domain.Preferences
}

// ProfileService handles profile reads and updates
type ProfileService struct {
	ProfileRepo domain.ProfileRepository
	Seeder      *seeder.ProfileSeeder
	Rates       domain.RateSource

	now func() time.Time
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(profileRepo domain.ProfileRepository, profileSeeder *seeder.ProfileSeeder, rates domain.RateSource) *ProfileService {
	return &ProfileService{
		ProfileRepo: profileRepo,
		Seeder:      profileSeeder,
		Rates:       rates,
		now:         time.Now,
	}
}

// GetBaseProfile returns the stored profile, amounts in MXN
func (s *ProfileService) GetBaseProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.Seeder.EnsureProfile(ctx, userID)
}

// GetProfile returns the profile converted to its display currency
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	base, err := s.GetBaseProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	rates, err := s.ratesFor(ctx, base.Currency)
	if err != nil {
		return nil, err
	}
	return valuation.ProfileView(base, rates)
}

// UpdateProfile applies a partial update and returns the new display view
// Logic:
//  1. Load the base profile (created on first use)
//  2. Convert monetary inputs from the current display currency to MXN
//  3. Apply, validate and store
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.Profile, error) {
	base, err := s.GetBaseProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	inputCurrency := base.Currency
	displayCurrency := base.Currency
	if input.Currency != nil {
		displayCurrency = *input.Currency
	}
	amountsChanged := input.MonthlyIncome != nil || input.FirstMillionGoal != nil || input.NetWorth != nil

	// Rates are resolved before the write so a stored update always yields a view
	var rates *domain.RateSnapshot
	if displayCurrency != domain.BaseCurrency || (amountsChanged && inputCurrency != domain.BaseCurrency) {
		if rates, err = s.Rates.GetRates(ctx); err != nil {
			return nil, err
		}
	}

	updated := *base
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.Avatar != nil {
		updated.Avatar = *input.Avatar
	}
	if input.Preferences != nil {
		updated.Preferences = *input.Preferences
	}
	for _, field := range []struct {
		in  *decimal.Decimal
		out *decimal.Decimal
	}{
		{input.MonthlyIncome, &updated.MonthlyIncome},
		{input.FirstMillionGoal, &updated.FirstMillionGoal},
		{input.NetWorth, &updated.NetWorth},
	} {
		if field.in == nil {
			continue
		}
		baseAmount, err := valuation.ToBase(*field.in, inputCurrency, rates)
		if err != nil {
			return nil, err
		}
		*field.out = baseAmount
	}
	if input.Currency != nil {
		updated.Currency = *input.Currency
	}

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	updated.UpdatedAt = s.now().UTC()
	if err := s.ProfileRepo.Upsert(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return valuation.ProfileView(&updated, rates)
}

// ToggleCurrency switches the display currency between MXN and USD
func (s *ProfileService) ToggleCurrency(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	base, err := s.GetBaseProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := base.Currency.Toggle()
	return s.UpdateProfile(ctx, userID, UpdateProfileInput{Currency: &next})
}

// ratesFor returns nil when the currency needs no conversion
func (s *ProfileService) ratesFor(ctx context.Context, currency domain.Currency) (*domain.RateSnapshot, error) {
	if currency == domain.BaseCurrency {
		return nil, nil
	}
	return s.Rates.GetRates(ctx)
}
