package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// expectedHeaders enforces strict column ordering for price history files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{"timestamp", "symbol", "price"}

// parseFile opens, validates, parses, and appends one price file into the
// store. Rows must be pre-sorted ascending by timestamp per symbol; the
// store does not reorder.
//
// It fails on:
//   - header not matching expected order/length
//   - malformed timestamp or price in any row
//   - unrecoverable I/O errors
//
// Parameters:
//   - ctx:   context for cancellation.
//   - path:  file path.
//   - store: destination for parsed observations.
//
// Returns the number of rows appended.
func parseFile(ctx context.Context, path string, store storage.PriceStore) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable but we'll check explicitly

	// Validate headers strictly.
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	lineNumber := 1 // header already read
	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		ts, symbol, price, err := recordToObservation(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}

		store.Append(symbol, ts, price)
		total++
	}

	return total, nil
}

// recordToObservation converts one CSV record (already validated length==3)
// into its parts.
//
// Column order:
//
//	0 timestamp → epoch milliseconds, UTC
//	1 symbol    → instrument identifier, trimmed
//	2 price     → non-negative decimal, rounded to the system precision
func recordToObservation(rec []string) (time.Time, string, decimal.Decimal, error) {
	millis, err := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
	if err != nil {
		return time.Time{}, "", decimal.Decimal{}, fmt.Errorf("invalid timestamp: %v", err)
	}
	ts := time.UnixMilli(millis).UTC()

	symbol := strings.TrimSpace(rec[1])
	if symbol == "" {
		return time.Time{}, "", decimal.Decimal{}, fmt.Errorf("empty symbol")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return time.Time{}, "", decimal.Decimal{}, fmt.Errorf("invalid price: %v", err)
	}
	if price.IsNegative() {
		return time.Time{}, "", decimal.Decimal{}, fmt.Errorf("negative price: %s", price)
	}
	price = models.RoundSignificant(price, models.PricePrecision)

	return ts, symbol, price, nil
}
