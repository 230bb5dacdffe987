package dto

import (
	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// StatsResponse is the JSON structure returned by
// GET /api/v1/cryptos/{symbol}/stats.
//
// Fields match the API contract and may differ from internal domain models.
// Decimals serialize as quoted strings to preserve precision on the wire.
type StatsResponse struct {
	Symbol string          `json:"symbol" example:"BTC"`
	Oldest decimal.Decimal `json:"oldest" example:"46813.21"`
	Newest decimal.Decimal `json:"newest" example:"47143.98"`
	Min    decimal.Decimal `json:"min" example:"33276.59"`
	Max    decimal.Decimal `json:"max" example:"47722.66"`
}

// NormalizedRangeResponse is the JSON structure for one entry of the
// normalized-range ranking and for the highest-on-date result.
type NormalizedRangeResponse struct {
	Symbol          string          `json:"symbol" example:"ETH"`
	NormalizedRange decimal.Decimal `json:"normalized_range" example:"0.6384"`
}

// NewStatsResponse maps a domain SymbolStats to its API shape.
func NewStatsResponse(s models.SymbolStats) StatsResponse {
	return StatsResponse{
		Symbol: s.Symbol,
		Oldest: s.Oldest,
		Newest: s.Newest,
		Min:    s.Min,
		Max:    s.Max,
	}
}

// NewNormalizedRangeResponse maps a domain NormalizedRange to its API shape.
func NewNormalizedRangeResponse(nr models.NormalizedRange) NormalizedRangeResponse {
	return NormalizedRangeResponse{Symbol: nr.Symbol, NormalizedRange: nr.Value}
}
