package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PricePrecision is the number of significant digits carried by every price
// in the system. Source files are rounded to this precision at ingestion, and
// the normalized-range division rounds its result to it as well.
const PricePrecision = 4

// PriceObservation is a single historical price point for a symbol.
// Timestamps are UTC. Observations are created once at ingestion and never
// mutated afterwards.
type PriceObservation struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// RoundSignificant rounds d to the given number of significant digits using
// round-half-up. Prices in this system are non-negative, so shopspring's
// half-away-from-zero Round is equivalent to half-up here.
func RoundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	// Magnitude of the leading digit: for d = coefficient * 10^exp the most
	// significant digit sits at 10^(numDigits-1+exp).
	leading := int32(d.NumDigits()) - 1 + d.Exponent()
	places := digits - 1 - leading
	return d.Round(places)
}
