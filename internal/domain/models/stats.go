package models

import "github.com/shopspring/decimal"

// SymbolStats holds the price statistics for one symbol over a period.
//
// Fields:
//   - Symbol: the instrument identifier (e.g., "BTC").
//   - Oldest: price of the first observation in the period.
//   - Newest: price of the last observation in the period.
//   - Min: minimum price observed in the period.
//   - Max: maximum price observed in the period.
//
// Oldest and Newest come from the series' insertion order, not from a
// timestamp scan; chronological input is a loader precondition.
//
// swagger:model SymbolStats
type SymbolStats struct {
	Symbol string          `json:"symbol" example:"BTC"`
	Oldest decimal.Decimal `json:"oldest" example:"46813.21"`
	Newest decimal.Decimal `json:"newest" example:"47143.98"`
	Min    decimal.Decimal `json:"min" example:"33276.59"`
	Max    decimal.Decimal `json:"max" example:"47722.66"`
}

// NormalizedRange is the volatility metric (max-min)/min for one symbol,
// rounded to PricePrecision significant digits. Ranked by Value only.
//
// swagger:model NormalizedRange
type NormalizedRange struct {
	Symbol string          `json:"symbol" example:"ETH"`
	Value  decimal.Decimal `json:"normalized_range" example:"0.6384"`
}
