package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a record does not exist for the user
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is wrapped by every validation error so transports can map it
	ErrInvalidInput = errors.New("invalid input")

	// ErrRatesUnavailable means no fresh, stale or persisted rate snapshot could be produced
	ErrRatesUnavailable = errors.New("market rates unavailable")

	// ErrDegenerateIncome marks a zero monthly income. It only suppresses percentage
	// displays and is never returned by a calculation as a failure.
	ErrDegenerateIncome = errors.New("monthly income is zero")
)

// InvalidRateError is returned when a conversion needs a rate that is zero, negative or non-finite
type InvalidRateError struct {
	Rate  string // usdRate, btcUsd or ethUsd
	Value string
}

func (e *InvalidRateError) Error() string {
	return fmt.Sprintf("invalid rate %s=%s", e.Rate, e.Value)
}

// UnknownAssetTypeError is returned when an amount is denominated in an asset the engine does not know
type UnknownAssetTypeError struct {
	AssetType AssetType
}

func (e *UnknownAssetTypeError) Error() string {
	return fmt.Sprintf("unknown asset type %q", string(e.AssetType))
}

// invalidf builds a validation error wrapping ErrInvalidInput
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
