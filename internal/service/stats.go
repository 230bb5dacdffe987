package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// ErrZeroMinPrice is returned when a normalized range is requested for a
// series whose minimum price is zero: (max-min)/min is undefined there.
// It is a data problem, never a panic.
var ErrZeroMinPrice = fmt.Errorf("minimum price is zero, normalized range undefined")

// NoDataForDateError reports that a symbol is known but has no observations
// on the requested UTC calendar date.
type NoDataForDateError struct {
	Symbol string
	Date   time.Time
}

func (e *NoDataForDateError) Error() string {
	return fmt.Sprintf("no data for %s on %s", e.Symbol, e.Date.Format("2006-01-02"))
}

// StatsService defines business logic for price statistics and the
// normalized-range volatility ranking.
type StatsService interface {
	// Stats returns oldest/newest/min/max over the symbol's full series.
	Stats(symbol string) (models.SymbolStats, error)
	// StatsForDate returns the same reduction restricted to observations
	// on the given UTC calendar date.
	StatsForDate(symbol string, date time.Time) (models.SymbolStats, error)
	// NormalizedRange computes (max-min)/min for the given stats.
	NormalizedRange(stats models.SymbolStats) (models.NormalizedRange, error)
	// RankedDescending ranks every known symbol by normalized range,
	// highest first.
	RankedDescending() ([]models.NormalizedRange, error)
	// HighestOnDate returns the symbol with the highest normalized range
	// among those with observations on the given date.
	HighestOnDate(date time.Time) (models.NormalizedRange, error)
}

type statsService struct {
	store storage.PriceStore
}

// NewStatsService constructs a StatsService reading from the given store.
func NewStatsService(store storage.PriceStore) StatsService {
	return &statsService{store: store}
}

func (s *statsService) Stats(symbol string) (models.SymbolStats, error) {
	obs, err := s.store.Series(symbol)
	if err != nil {
		return models.SymbolStats{}, err
	}
	return reduce(symbol, obs), nil
}

func (s *statsService) StatsForDate(symbol string, date time.Time) (models.SymbolStats, error) {
	obs, err := s.store.Series(symbol)
	if err != nil {
		return models.SymbolStats{}, err
	}

	day := date.UTC().Truncate(24 * time.Hour)
	var filtered []models.PriceObservation
	for _, o := range obs {
		if o.Timestamp.Truncate(24 * time.Hour).Equal(day) {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return models.SymbolStats{}, &NoDataForDateError{Symbol: symbol, Date: day}
	}
	return reduce(symbol, filtered), nil
}

func (s *statsService) NormalizedRange(stats models.SymbolStats) (models.NormalizedRange, error) {
	if stats.Min.IsZero() {
		return models.NormalizedRange{}, fmt.Errorf("symbol %s: %w", stats.Symbol, ErrZeroMinPrice)
	}
	// Single observable rounding step: divide at full precision, then
	// round half-up to the fixed significant-digit precision.
	value := stats.Max.Sub(stats.Min).Div(stats.Min)
	return models.NormalizedRange{
		Symbol: stats.Symbol,
		Value:  models.RoundSignificant(value, models.PricePrecision),
	}, nil
}

func (s *statsService) RankedDescending() ([]models.NormalizedRange, error) {
	symbols := s.store.Symbols()
	ranges := make([]models.NormalizedRange, 0, len(symbols))
	for _, sym := range symbols {
		stats, err := s.Stats(sym)
		if err != nil {
			return nil, err
		}
		nr, err := s.NormalizedRange(stats)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, nr)
	}
	sortDescending(ranges)
	return ranges, nil
}

// HighestOnDate skips symbols with no observations on the date and ranks the
// rest; it fails with NoDataForDateError only when no symbol qualifies.
func (s *statsService) HighestOnDate(date time.Time) (models.NormalizedRange, error) {
	var candidates []models.NormalizedRange
	for _, sym := range s.store.Symbols() {
		stats, err := s.StatsForDate(sym, date)
		if err != nil {
			var noData *NoDataForDateError
			if errors.As(err, &noData) {
				continue
			}
			return models.NormalizedRange{}, err
		}
		nr, err := s.NormalizedRange(stats)
		if err != nil {
			return models.NormalizedRange{}, err
		}
		candidates = append(candidates, nr)
	}
	if len(candidates) == 0 {
		return models.NormalizedRange{}, &NoDataForDateError{Symbol: "any", Date: date.UTC().Truncate(24 * time.Hour)}
	}
	sortDescending(candidates)
	return candidates[0], nil
}

// reduce computes stats over a non-empty, chronologically ordered slice.
// Oldest and newest are the first and last elements by construction.
func reduce(symbol string, obs []models.PriceObservation) models.SymbolStats {
	min := obs[0].Price
	max := obs[0].Price
	for _, o := range obs[1:] {
		if o.Price.LessThan(min) {
			min = o.Price
		}
		if o.Price.GreaterThan(max) {
			max = o.Price
		}
	}
	return models.SymbolStats{
		Symbol: symbol,
		Oldest: obs[0].Price,
		Newest: obs[len(obs)-1].Price,
		Min:    min,
		Max:    max,
	}
}

// sortDescending orders by value descending, symbol ascending on ties, so
// the ranking is reproducible.
func sortDescending(ranges []models.NormalizedRange) {
	sort.Slice(ranges, func(i, j int) bool {
		if c := ranges[i].Value.Cmp(ranges[j].Value); c != 0 {
			return c > 0
		}
		return ranges[i].Symbol < ranges[j].Symbol
	})
}
