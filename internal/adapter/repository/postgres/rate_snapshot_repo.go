package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/umbral-backend/internal/domain"
)

// rateSnapshotRepository implements domain.RateSnapshotRepository
type rateSnapshotRepository struct {
	db *DB
}

// NewRateSnapshotRepository creates a new rate snapshot repository
func NewRateSnapshotRepository(db *DB) domain.RateSnapshotRepository {
	return &rateSnapshotRepository{db: db}
}

// Add records a fetched rate snapshot
func (r *rateSnapshotRepository) Add(ctx context.Context, snapshot *domain.RateSnapshot) error {
	query := `
		INSERT INTO rate_snapshots (usd_rate, btc_usd, eth_usd, source, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		snapshot.USDRate.String(),
		snapshot.BTCUSD.String(),
		snapshot.ETHUSD.String(),
		snapshot.Source,
		snapshot.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rate snapshot: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recently fetched snapshot
func (r *rateSnapshotRepository) GetLatest(ctx context.Context) (*domain.RateSnapshot, error) {
	query := `
		SELECT usd_rate, btc_usd, eth_usd, source, fetched_at
		FROM rate_snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var snapshot domain.RateSnapshot
	var usdStr, btcStr, ethStr string

	err := r.db.QueryRowContext(ctx, query).Scan(
		&usdStr,
		&btcStr,
		&ethStr,
		&snapshot.Source,
		&snapshot.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no rate snapshot stored: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get latest rate snapshot: %w", err)
	}

	if snapshot.USDRate, err = parseDecimal("usd_rate", usdStr); err != nil {
		return nil, err
	}
	if snapshot.BTCUSD, err = parseDecimal("btc_usd", btcStr); err != nil {
		return nil, err
	}
	if snapshot.ETHUSD, err = parseDecimal("eth_usd", ethStr); err != nil {
		return nil, err
	}

	return &snapshot, nil
}
