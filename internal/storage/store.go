package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
)

// ErrUnknownSymbol is returned when a symbol has no observations in the store.
// Use errors.Is to detect it; the concrete error carries the symbol.
var ErrUnknownSymbol = fmt.Errorf("unknown symbol")

// UnknownSymbolError wraps ErrUnknownSymbol with the offending symbol so the
// boundary can format a user-facing message.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol: %s", e.Symbol)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// PriceStore defines the contract for the in-memory time-series store.
//
// The store is populated once by the ingestion loader and read-only
// afterwards. Append does not enforce chronological order: supplying
// observations sorted ascending by timestamp per symbol is a loader
// precondition, and oldest/newest statistics are defined by insertion order.
type PriceStore interface {
	// Append adds an observation to the symbol's series, creating the
	// series if absent.
	Append(symbol string, ts time.Time, price decimal.Decimal)
	// IsKnown reports whether the symbol has at least one observation.
	IsKnown(symbol string) bool
	// Symbols returns every symbol with at least one observation, in no
	// particular order.
	Symbols() []string
	// Series returns the symbol's observations in insertion order. The
	// returned slice is a read-only view and must not be mutated.
	Series(symbol string) ([]models.PriceObservation, error)
}

type priceStore struct {
	mu     sync.RWMutex
	series map[string][]models.PriceObservation
}

// NewPriceStore creates an empty PriceStore.
func NewPriceStore() PriceStore {
	return &priceStore{series: make(map[string][]models.PriceObservation)}
}

func (s *priceStore) Append(symbol string, ts time.Time, price decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[symbol] = append(s.series[symbol], models.PriceObservation{
		Timestamp: ts.UTC(),
		Price:     price,
	})
}

func (s *priceStore) IsKnown(symbol string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series[symbol]) > 0
}

func (s *priceStore) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	symbols := make([]string, 0, len(s.series))
	for sym, obs := range s.series {
		if len(obs) > 0 {
			symbols = append(symbols, sym)
		}
	}
	return symbols
}

func (s *priceStore) Series(symbol string) ([]models.PriceObservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obs := s.series[symbol]
	if len(obs) == 0 {
		return nil, &UnknownSymbolError{Symbol: symbol}
	}
	return obs, nil
}
