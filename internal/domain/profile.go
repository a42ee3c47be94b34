package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultFirstMillionGoal is the savings goal of a new profile, in MXN
var DefaultFirstMillionGoal = decimal.NewFromInt(1000000)

// Preferences holds notification toggles shown in the settings page
type Preferences struct {
	AINotifications bool
	EmailSummary    bool
}

// Profile represents the user's financial profile.
// MonthlyIncome, FirstMillionGoal and NetWorth are stored in BaseCurrency (MXN);
// Currency only selects the display view.
type Profile struct {
	UserID           uuid.UUID
	Name             string
	Avatar           string
	Currency         Currency
	MonthlyIncome    decimal.Decimal
	FirstMillionGoal decimal.Decimal
	NetWorth         decimal.Decimal
	Preferences      Preferences
	UpdatedAt        time.Time
}

// NewDefaultProfile returns the profile a user starts with
func NewDefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:           userID,
		Name:             "Usuario",
		Currency:         CurrencyMXN,
		MonthlyIncome:    decimal.Zero,
		FirstMillionGoal: DefaultFirstMillionGoal,
		NetWorth:         decimal.Zero,
		Preferences: Preferences{
			AINotifications: true,
			EmailSummary:    false,
		},
	}
}

// Validate ensures the profile adheres to domain rules
func (p *Profile) Validate() error {
	if p.UserID == uuid.Nil {
		return invalidf("profile user ID is required")
	}
	if p.Name == "" {
		return invalidf("profile name cannot be empty")
	}
	if !p.Currency.Valid() {
		return invalidf("profile currency must be MXN or USD, got %q", p.Currency)
	}
	if p.MonthlyIncome.IsNegative() {
		return invalidf("monthly income must not be negative")
	}
	if p.FirstMillionGoal.IsNegative() {
		return invalidf("first million goal must not be negative")
	}
	return nil
}
