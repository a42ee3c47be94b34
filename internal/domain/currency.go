package domain

// AssetType is the unit a balance is denominated in.
// Every conversion switches over this set; MXN and USD double as display currencies.
type AssetType string

const (
	AssetMXN AssetType = "MXN"
	AssetUSD AssetType = "USD"
	AssetBTC AssetType = "BTC"
	AssetETH AssetType = "ETH"
)

// AssetTypes lists every supported asset in display order
var AssetTypes = []AssetType{AssetMXN, AssetUSD, AssetBTC, AssetETH}

// Valid reports whether the asset type is one of the four supported assets
func (a AssetType) Valid() bool {
	switch a {
	case AssetMXN, AssetUSD, AssetBTC, AssetETH:
		return true
	}
	return false
}

// Currency is a fiat currency used for the profile display and for envelopes
type Currency string

const (
	CurrencyMXN Currency = "MXN"
	CurrencyUSD Currency = "USD"
)

// BaseCurrency is the storage currency of profile amounts
const BaseCurrency = CurrencyMXN

// Valid reports whether the currency is MXN or USD
func (c Currency) Valid() bool {
	return c == CurrencyMXN || c == CurrencyUSD
}

// Asset returns the asset type with the same denomination
func (c Currency) Asset() AssetType {
	return AssetType(c)
}

// Toggle returns the other display currency
func (c Currency) Toggle() Currency {
	if c == CurrencyUSD {
		return CurrencyMXN
	}
	return CurrencyUSD
}
