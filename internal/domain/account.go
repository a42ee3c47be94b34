package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents what the account is used for
type AccountType string

const (
	AccountTypeNomina    AccountType = "Nomina"    // Payroll / everyday cash
	AccountTypeInversion AccountType = "Inversion" // Investment
)

// Account represents a holding of a single asset
type Account struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Balance     decimal.Decimal // Denominated in AssetType
	AssetType   AssetType
	Type        AccountType
	APY         *decimal.Decimal // Annual percentage yield, investment accounts only
	Color       string
	Label       string
	Subtitle    string
	LastUpdated time.Time
	CreatedAt   time.Time
}

// Validate ensures the account adheres to domain rules.
// Unknown asset types are rejected on write; the net-worth aggregator still
// tolerates them on read for rows written by older clients.
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return invalidf("account user ID is required")
	}
	if a.Name == "" {
		return invalidf("account name cannot be empty")
	}
	if !a.AssetType.Valid() {
		return invalidf("account asset type must be MXN, USD, BTC or ETH, got %q", a.AssetType)
	}
	if a.Type != AccountTypeNomina && a.Type != AccountTypeInversion {
		return invalidf("account type must be Nomina or Inversion, got %q", a.Type)
	}
	if a.Balance.IsNegative() {
		return invalidf("account balance must not be negative")
	}
	if a.APY != nil && a.APY.IsNegative() {
		return invalidf("account APY must not be negative")
	}
	return nil
}
