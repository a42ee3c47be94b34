package allocator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
	"github.com/simaogato/umbral-backend/internal/usecase/valuation"
)

// Status is the health band of an allocation
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusCaution   Status = "caution"
	StatusOverdraft Status = "overdraft"
)

var (
	hundred = decimal.NewFromInt(100)

	// Upper bounds of each band, inclusive
	healthyCeiling = decimal.NewFromInt(85)
	cautionCeiling = decimal.NewFromInt(100)
)

// Allocation is the result of distributing monthly income into envelopes.
// All amounts are in the profile's display currency.
type Allocation struct {
	TotalAssigned   decimal.Decimal
	ToAssign        decimal.Decimal     // May be negative when envelopes exceed income
	UsagePercentage decimal.NullDecimal // Invalid when monthly income is zero
	Status          Status
}

// Usage returns the usage percentage, or domain.ErrDegenerateIncome when income is zero
func (a *Allocation) Usage() (decimal.Decimal, error) {
	if !a.UsagePercentage.Valid {
		return decimal.Zero, domain.ErrDegenerateIncome
	}
	return a.UsagePercentage.Decimal, nil
}

// CalculateAllocation computes how much of the monthly income is assigned to envelopes
// Logic:
//  1. Convert every envelope's assigned amount from its own currency to the display currency
//  2. ToAssign = income - total assigned
//  3. Usage = total assigned / income * 100, undefined for zero income
//  4. Classify the usage into a status band
//
// view must be the display-currency view of the profile (see valuation.ProfileView).
func CalculateAllocation(envelopes []*domain.Envelope, view *domain.Profile, rates *domain.RateSnapshot) (*Allocation, error) {
	total, err := TotalAssigned(envelopes, view.Currency, rates)
	if err != nil {
		return nil, err
	}

	allocation := &Allocation{
		TotalAssigned: total,
		ToAssign:      view.MonthlyIncome.Sub(total),
	}

	if view.MonthlyIncome.IsZero() {
		// Nothing can be assigned against a zero income without overdrawing
		if total.IsZero() {
			allocation.Status = StatusHealthy
		} else {
			allocation.Status = StatusOverdraft
		}
		return allocation, nil
	}

	usage := total.Mul(hundred).Div(view.MonthlyIncome)
	allocation.UsagePercentage = decimal.NewNullDecimal(usage)
	allocation.Status = ClassifyUsage(usage)

	return allocation, nil
}

// TotalAssigned sums the assigned amount of every envelope in the display currency
func TotalAssigned(envelopes []*domain.Envelope, display domain.Currency, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, env := range envelopes {
		value, err := valuation.Value(env.Val, env.Currency.Asset(), display, rates)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(value)
	}
	return total, nil
}

// ClassifyUsage maps a usage percentage to its band.
// Bands are closed on their upper value: 85 is healthy, 100 is caution.
func ClassifyUsage(usage decimal.Decimal) Status {
	switch {
	case usage.LessThanOrEqual(healthyCeiling):
		return StatusHealthy
	case usage.LessThanOrEqual(cautionCeiling):
		return StatusCaution
	default:
		return StatusOverdraft
	}
}

// MonthlySavings is the part of the income not assigned to any envelope, floored at zero.
// It is computed on the base (MXN) profile and returned in the profile's display currency.
func MonthlySavings(envelopes []*domain.Envelope, base *domain.Profile, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	assigned, err := TotalAssigned(envelopes, domain.BaseCurrency, rates)
	if err != nil {
		return decimal.Zero, err
	}

	savings := base.MonthlyIncome.Sub(assigned)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	return valuation.Value(savings, domain.BaseCurrency.Asset(), base.Currency, rates)
}

// FillPercentage is how full an envelope is relative to its cap, capped at 100.
// An envelope with no cap counts as full.
func FillPercentage(env *domain.Envelope) decimal.Decimal {
	if !env.Tot.IsPositive() {
		return hundred
	}
	fill := env.Val.Mul(hundred).Div(env.Tot)
	if fill.GreaterThan(hundred) {
		return hundred
	}
	return fill
}
