package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// DemoUserID is the user seeded in development mode
var DemoUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// ProfileSeeder makes sure every user has a profile before it is read
type ProfileSeeder struct {
	repo domain.ProfileRepository
}

// NewProfileSeeder creates a new ProfileSeeder instance
func NewProfileSeeder(repo domain.ProfileRepository) *ProfileSeeder {
	return &ProfileSeeder{
		repo: repo,
	}
}

// EnsureProfile returns the user's profile, creating the default one if it doesn't exist
func (s *ProfileSeeder) EnsureProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.repo.Get(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	// Profile doesn't exist, create it
	profile = domain.NewDefaultProfile(userID)
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create default profile: %w", err)
	}

	return profile, nil
}

// Seed ensures the development user exists
func (s *ProfileSeeder) Seed(ctx context.Context) error {
	_, err := s.EnsureProfile(ctx, DemoUserID)
	return err
}
