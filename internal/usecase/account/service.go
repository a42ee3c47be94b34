package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// AccountInput carries account fields. Nil fields keep their current value.
// ClearAPY removes the yield, which a nil APY cannot express on update.
type AccountInput struct {
	Name      *string
	Balance   *decimal.Decimal
	AssetType *domain.AssetType
	Type      *domain.AccountType
	APY       *decimal.Decimal
	ClearAPY  bool
	Color     *string
	Label     *string
	Subtitle  *string
}

// AccountService handles account operations
type AccountService struct {
	AccountRepo domain.AccountRepository

	now func() time.Time
}

// NewAccountService creates a new AccountService instance
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{
		AccountRepo: accountRepo,
		now:         time.Now,
	}
}

// ListAccounts returns the user's accounts, oldest first
func (s *AccountService) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	accounts, err := s.AccountRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount creates a new account
// Logic:
//  1. Name, asset type and account type are required; balance defaults to 0
//  2. Color and label default from the asset type
//  3. Validate and save with LastUpdated set to now
func (s *AccountService) CreateAccount(ctx context.Context, userID uuid.UUID, input AccountInput) (*domain.Account, error) {
	now := s.now().UTC()
	acc := &domain.Account{
		ID:          uuid.New(),
		UserID:      userID,
		Balance:     decimal.Zero,
		LastUpdated: now,
		CreatedAt:   now,
	}
	apply(acc, input)
	if acc.Color == "" {
		acc.Color = defaultColor(acc.AssetType)
	}
	if acc.Label == "" {
		acc.Label = string(acc.AssetType)
	}

	if err := acc.Validate(); err != nil {
		return nil, err
	}

	if err := s.AccountRepo.Create(ctx, acc); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return acc, nil
}

// UpdateAccount applies a partial update and stamps LastUpdated
func (s *AccountService) UpdateAccount(ctx context.Context, userID, id uuid.UUID, input AccountInput) (*domain.Account, error) {
	existing, err := s.AccountRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	acc := *existing
	apply(&acc, input)
	if err := acc.Validate(); err != nil {
		return nil, err
	}

	acc.LastUpdated = s.now().UTC()
	if err := s.AccountRepo.Update(ctx, &acc); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return &acc, nil
}

// DeleteAccount removes an account owned by the user
func (s *AccountService) DeleteAccount(ctx context.Context, userID, id uuid.UUID) error {
	return s.AccountRepo.Delete(ctx, userID, id)
}

func apply(acc *domain.Account, in AccountInput) {
	if in.Name != nil {
		acc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Balance != nil {
		acc.Balance = *in.Balance
	}
	if in.AssetType != nil {
		acc.AssetType = *in.AssetType
	}
	if in.Type != nil {
		acc.Type = *in.Type
	}
	if in.ClearAPY {
		acc.APY = nil
	} else if in.APY != nil {
		apy := *in.APY
		acc.APY = &apy
	}
	if in.Color != nil {
		acc.Color = *in.Color
	}
	if in.Label != nil {
		acc.Label = *in.Label
	}
	if in.Subtitle != nil {
		acc.Subtitle = *in.Subtitle
	}
}

func defaultColor(asset domain.AssetType) string {
	switch asset {
	case domain.AssetBTC:
		return "orange"
	case domain.AssetETH:
		return "indigo"
	case domain.AssetUSD:
		return "green"
	default:
		return "blue"
	}
}
