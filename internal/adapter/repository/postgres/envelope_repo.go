package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/simaogato/umbral-backend/internal/domain"
)

const envelopeColumns = `id, user_id, icon, color, title, type, val, tot, currency, msg, warn, due_date, created_at`

// envelopeRepository implements domain.EnvelopeRepository
type envelopeRepository struct {
	db *DB
}

// NewEnvelopeRepository creates a new envelope repository
func NewEnvelopeRepository(db *DB) domain.EnvelopeRepository {
	return &envelopeRepository{db: db}
}

// GetByID retrieves an envelope owned by the user
func (r *envelopeRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*domain.Envelope, error) {
	query := `SELECT ` + envelopeColumns + ` FROM envelopes WHERE id = $1 AND user_id = $2`

	env, err := scanEnvelope(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("envelope %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get envelope by ID: %w", err)
	}
	return env, nil
}

// List retrieves all envelopes of a user, oldest first
func (r *envelopeRepository) List(ctx context.Context, userID uuid.UUID) ([]*domain.Envelope, error) {
	query := `SELECT ` + envelopeColumns + ` FROM envelopes WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query envelopes: %w", err)
	}
	defer rows.Close()

	envelopes := []*domain.Envelope{}
	for rows.Next() {
		env, err := scanEnvelope(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan envelope: %w", err)
		}
		envelopes = append(envelopes, env)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating envelopes: %w", err)
	}

	return envelopes, nil
}

// Create creates a new envelope
func (r *envelopeRepository) Create(ctx context.Context, env *domain.Envelope) error {
	query := `
		INSERT INTO envelopes (` + envelopeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(ctx, query,
		env.ID,
		env.UserID,
		env.Icon,
		env.Color,
		env.Title,
		env.Type,
		env.Val.String(),
		env.Tot.String(),
		string(env.Currency),
		env.Msg,
		env.Warn,
		dueDateArg(env.DueDate),
		env.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create envelope: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of an envelope
func (r *envelopeRepository) Update(ctx context.Context, env *domain.Envelope) error {
	query := `
		UPDATE envelopes
		SET icon = $3, color = $4, title = $5, type = $6, val = $7, tot = $8,
		    currency = $9, msg = $10, warn = $11, due_date = $12
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		env.ID,
		env.UserID,
		env.Icon,
		env.Color,
		env.Title,
		env.Type,
		env.Val.String(),
		env.Tot.String(),
		string(env.Currency),
		env.Msg,
		env.Warn,
		dueDateArg(env.DueDate),
	)
	if err != nil {
		return fmt.Errorf("failed to update envelope: %w", err)
	}

	return requireOneRow(result, "envelope", env.ID)
}

// Delete removes an envelope owned by the user
func (r *envelopeRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM envelopes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete envelope: %w", err)
	}

	return requireOneRow(result, "envelope", id)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEnvelope(row rowScanner) (*domain.Envelope, error) {
	var env domain.Envelope
	var valStr, totStr string
	var dueDate sql.NullTime

	err := row.Scan(
		&env.ID,
		&env.UserID,
		&env.Icon,
		&env.Color,
		&env.Title,
		&env.Type,
		&valStr,
		&totStr,
		&env.Currency,
		&env.Msg,
		&env.Warn,
		&dueDate,
		&env.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if env.Val, err = parseDecimal("val", valStr); err != nil {
		return nil, err
	}
	if env.Tot, err = parseDecimal("tot", totStr); err != nil {
		return nil, err
	}

	// Parse due_date (nullable DATE)
	if dueDate.Valid {
		d := time.Date(dueDate.Time.Year(), dueDate.Time.Month(), dueDate.Time.Day(), 0, 0, 0, 0, time.UTC)
		env.DueDate = &d
	}

	return &env, nil
}

func dueDateArg(due *time.Time) any {
	if due == nil {
		return nil
	}
	return due.Format(domain.DueDateLayout)
}

func requireOneRow(result sql.Result, entity string, id uuid.UUID) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
