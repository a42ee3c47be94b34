package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// profileRepository implements domain.ProfileRepository
type profileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *DB) domain.ProfileRepository {
	return &profileRepository{db: db}
}

// Get retrieves the profile of a user
func (r *profileRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT user_id, name, avatar, currency, monthly_income, first_million_goal, net_worth,
		       ai_notifications, email_summary, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p domain.Profile
	var incomeStr, goalStr, netWorthStr string

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Name,
		&p.Avatar,
		&p.Currency,
		&incomeStr,
		&goalStr,
		&netWorthStr,
		&p.Preferences.AINotifications,
		&p.Preferences.EmailSummary,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile for user %s: %w", userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if p.MonthlyIncome, err = parseDecimal("monthly_income", incomeStr); err != nil {
		return nil, err
	}
	if p.FirstMillionGoal, err = parseDecimal("first_million_goal", goalStr); err != nil {
		return nil, err
	}
	if p.NetWorth, err = parseDecimal("net_worth", netWorthStr); err != nil {
		return nil, err
	}

	return &p, nil
}

// Upsert inserts the profile or replaces the stored one
func (r *profileRepository) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, avatar, currency, monthly_income, first_million_goal, net_worth,
		                      ai_notifications, email_summary, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			avatar = EXCLUDED.avatar,
			currency = EXCLUDED.currency,
			monthly_income = EXCLUDED.monthly_income,
			first_million_goal = EXCLUDED.first_million_goal,
			net_worth = EXCLUDED.net_worth,
			ai_notifications = EXCLUDED.ai_notifications,
			email_summary = EXCLUDED.email_summary,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		p.UserID,
		p.Name,
		p.Avatar,
		string(p.Currency),
		p.MonthlyIncome.String(),
		p.FirstMillionGoal.String(),
		p.NetWorth.String(),
		p.Preferences.AINotifications,
		p.Preferences.EmailSummary,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}
