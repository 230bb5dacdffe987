package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/storage"
)

const (
	fileSuffix     = "_values.csv"
	maxParallelCap = 8
)

// ProcessDirectory loads every price history file from dir into the store.
//
// Parameters:
//   - dir:      directory containing "*_values.csv" input files.
//   - store:    destination store (must not be serving queries yet).
//   - parallel: how many files to parse concurrently (0 = auto up to CPU).
//
// Behavior:
//   - Discovers all files named "<SYMBOL>_values.csv" in dir (non-recursive).
//   - Parses files concurrently; appends are serialized by the store.
//   - If any file fails, cancels the rest and returns that error.
//
// The store must be fully populated before concurrent queries begin; callers
// run this to completion before starting the HTTP server.
func ProcessDirectory(ctx context.Context, dir string, store storage.PriceStore, parallel int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found in %s", fileSuffix, dir)
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("ingestion start")

	// Concurrency: default to min(maxParallelCap, NumCPU), or clamp the
	// provided value.
	maxParallel := maxParallelCap
	if parallel > 0 {
		if parallel > maxParallelCap {
			parallel = maxParallelCap
		}
		maxParallel = parallel
	} else if c := runtime.NumCPU(); c < maxParallel {
		maxParallel = c
	}

	logger.L().Info().Int("max_parallel", maxParallel).Msg("ingestion configured")

	// errgroup will cancel siblings on first error.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i, file := range files {
		idx := i
		f := file

		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(f)
			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Msg("file start")

			rows, err := parseFile(gctx, f, store)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", f, err)
			}

			logger.L().Info().Int("idx", idx+1).Int("total", len(files)).Str("file", base).Int("rows", rows).Dur("elapsed", time.Since(start)).Msg("file done")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.L().Info().Int("symbols", len(store.Symbols())).Msg("ingestion completed")
	return nil
}
