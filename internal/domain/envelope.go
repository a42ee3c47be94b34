package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DueDateLayout is the wire and storage format of Envelope.DueDate
const DueDateLayout = "2006-01-02"

// Envelope represents a budget bucket with an assigned amount and a cap.
// Each envelope carries its own currency, independent of the profile currency.
type Envelope struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Icon      string
	Color     string
	Title     string
	Type      string
	Val       decimal.Decimal // Assigned amount
	Tot       decimal.Decimal // Cap
	Currency  Currency
	Msg       string
	Warn      bool
	DueDate   *time.Time // Calendar date only, nil when the envelope has no due date
	CreatedAt time.Time
}

// NewDefaultEnvelope returns the envelope created by the "add envelope" action
func NewDefaultEnvelope(userID uuid.UUID, currency Currency) *Envelope {
	return &Envelope{
		ID:       uuid.New(),
		UserID:   userID,
		Icon:     "category",
		Color:    "gray",
		Title:    "Nuevo Sobre",
		Type:     "General",
		Val:      decimal.Zero,
		Tot:      decimal.NewFromInt(1000),
		Currency: currency,
		Msg:      "Recién creado",
	}
}

// Validate ensures the envelope adheres to domain rules
func (e *Envelope) Validate() error {
	if e.UserID == uuid.Nil {
		return invalidf("envelope user ID is required")
	}
	if e.Title == "" {
		return invalidf("envelope title cannot be empty")
	}
	if !e.Currency.Valid() {
		return invalidf("envelope currency must be MXN or USD, got %q", e.Currency)
	}
	if e.Val.IsNegative() {
		return invalidf("envelope assigned amount must not be negative")
	}
	if e.Tot.IsNegative() {
		return invalidf("envelope cap must not be negative")
	}
	return nil
}

// ParseDueDate parses a YYYY-MM-DD date. An empty string clears the due date.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return nil, invalidf("due date must be YYYY-MM-DD: %v", err)
	}
	return &d, nil
}
