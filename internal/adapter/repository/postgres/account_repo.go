package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/umbral-backend/internal/domain"
)

const accountColumns = `id, user_id, name, balance, asset_type, type, apy, color, label, subtitle, last_updated, created_at`

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account owned by the user
func (r *accountRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1 AND user_id = $2`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}
	return acc, nil
}

// List retrieves all accounts of a user, oldest first
func (r *accountRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, acc *domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		acc.ID,
		acc.UserID,
		acc.Name,
		acc.Balance.String(),
		string(acc.AssetType),
		string(acc.Type),
		apyArg(acc),
		acc.Color,
		acc.Label,
		acc.Subtitle,
		acc.LastUpdated,
		acc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an account
func (r *accountRepository) Update(ctx context.Context, acc *domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $3, balance = $4, asset_type = $5, type = $6, apy = $7,
		    color = $8, label = $9, subtitle = $10, last_updated = $11
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		acc.ID,
		acc.UserID,
		acc.Name,
		acc.Balance.String(),
		string(acc.AssetType),
		string(acc.Type),
		apyArg(acc),
		acc.Color,
		acc.Label,
		acc.Subtitle,
		acc.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	return requireOneRow(result, "account", acc.ID)
}

// Delete removes an account owned by the user
func (r *accountRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return requireOneRow(result, "account", id)
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var acc domain.Account
	var balanceStr string
	var apyStr sql.NullString

	err := row.Scan(
		&acc.ID,
		&acc.UserID,
		&acc.Name,
		&balanceStr,
		&acc.AssetType,
		&acc.Type,
		&apyStr,
		&acc.Color,
		&acc.Label,
		&acc.Subtitle,
		&acc.LastUpdated,
		&acc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if acc.Balance, err = parseDecimal("balance", balanceStr); err != nil {
		return nil, err
	}

	// Parse apy (nullable)
	if apyStr.Valid {
		apy, err := parseDecimal("apy", apyStr.String)
		if err != nil {
			return nil, err
		}
		acc.APY = &apy
	}

	return &acc, nil
}

func apyArg(acc *domain.Account) any {
	if acc.APY == nil {
		return nil
	}
	return acc.APY.String()
}
