package valuation

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/umbral-backend/internal/domain"
)

// Convert converts an amount between any two supported assets.
// Logic:
//  1. Same asset: identity, no rate is consulted
//  2. Otherwise pivot through USD: from -> USD -> to
//
// A rate that a step needs must be strictly positive, else *domain.InvalidRateError is returned.
func Convert(amount decimal.Decimal, from, to domain.AssetType, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	if !from.Valid() {
		return decimal.Zero, &domain.UnknownAssetTypeError{AssetType: from}
	}
	if !to.Valid() {
		return decimal.Zero, &domain.UnknownAssetTypeError{AssetType: to}
	}
	if from == to {
		return amount, nil
	}
	if rates == nil {
		return decimal.Zero, domain.ErrRatesUnavailable
	}

	usd, err := toUSD(amount, from, rates)
	if err != nil {
		return decimal.Zero, err
	}
	return fromUSD(usd, to, rates)
}

// Value converts an asset amount into the display currency
func Value(amount decimal.Decimal, asset domain.AssetType, display domain.Currency, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	return Convert(amount, asset, display.Asset(), rates)
}

// ToBase converts an amount entered in the display currency into the MXN base currency
func ToBase(amount decimal.Decimal, display domain.Currency, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	return Convert(amount, display.Asset(), domain.BaseCurrency.Asset(), rates)
}

// ProfileView returns a copy of the base profile with its monetary fields in the profile's display currency
func ProfileView(base *domain.Profile, rates *domain.RateSnapshot) (*domain.Profile, error) {
	view := *base
	if base.Currency == domain.BaseCurrency {
		return &view, nil
	}

	var err error
	if view.MonthlyIncome, err = Value(base.MonthlyIncome, domain.BaseCurrency.Asset(), base.Currency, rates); err != nil {
		return nil, err
	}
	if view.FirstMillionGoal, err = Value(base.FirstMillionGoal, domain.BaseCurrency.Asset(), base.Currency, rates); err != nil {
		return nil, err
	}
	if view.NetWorth, err = Value(base.NetWorth, domain.BaseCurrency.Asset(), base.Currency, rates); err != nil {
		return nil, err
	}
	return &view, nil
}

// NetWorthResult is the aggregated value of a set of accounts in one display currency
type NetWorthResult struct {
	Total   decimal.Decimal
	ByAsset map[domain.AssetType]decimal.Decimal // Display-currency value per asset type
	Skipped []uuid.UUID                          // Accounts with an unknown asset type
}

// NetWorth sums every account balance in the display currency.
// Accounts with an unknown asset type contribute 0 and are listed in Skipped;
// an invalid rate aborts the aggregation.
func NetWorth(accounts []*domain.Account, display domain.Currency, rates *domain.RateSnapshot) (*NetWorthResult, error) {
	result := &NetWorthResult{
		Total:   decimal.Zero,
		ByAsset: make(map[domain.AssetType]decimal.Decimal),
	}

	for _, account := range accounts {
		value, err := Value(account.Balance, account.AssetType, display, rates)
		if err != nil {
			var unknown *domain.UnknownAssetTypeError
			if errors.As(err, &unknown) {
				result.Skipped = append(result.Skipped, account.ID)
				continue
			}
			return nil, err
		}
		result.Total = result.Total.Add(value)
		result.ByAsset[account.AssetType] = result.ByAsset[account.AssetType].Add(value)
	}

	return result, nil
}

func toUSD(amount decimal.Decimal, from domain.AssetType, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	switch from {
	case domain.AssetUSD:
		return amount, nil
	case domain.AssetMXN:
		if err := requirePositive("usdRate", rates.USDRate); err != nil {
			return decimal.Zero, err
		}
		return amount.Div(rates.USDRate), nil
	case domain.AssetBTC:
		if err := requirePositive("btcUsd", rates.BTCUSD); err != nil {
			return decimal.Zero, err
		}
		return amount.Mul(rates.BTCUSD), nil
	case domain.AssetETH:
		if err := requirePositive("ethUsd", rates.ETHUSD); err != nil {
			return decimal.Zero, err
		}
		return amount.Mul(rates.ETHUSD), nil
	}
	return decimal.Zero, &domain.UnknownAssetTypeError{AssetType: from}
}

func fromUSD(usd decimal.Decimal, to domain.AssetType, rates *domain.RateSnapshot) (decimal.Decimal, error) {
	switch to {
	case domain.AssetUSD:
		return usd, nil
	case domain.AssetMXN:
		if err := requirePositive("usdRate", rates.USDRate); err != nil {
			return decimal.Zero, err
		}
		return usd.Mul(rates.USDRate), nil
	case domain.AssetBTC:
		if err := requirePositive("btcUsd", rates.BTCUSD); err != nil {
			return decimal.Zero, err
		}
		return usd.Div(rates.BTCUSD), nil
	case domain.AssetETH:
		if err := requirePositive("ethUsd", rates.ETHUSD); err != nil {
			return decimal.Zero, err
		}
		return usd.Div(rates.ETHUSD), nil
	}
	return decimal.Zero, &domain.UnknownAssetTypeError{AssetType: to}
}

func requirePositive(name string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return &domain.InvalidRateError{Rate: name, Value: rate.String()}
	}
	return nil
}
