package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptopulse/config"
	"github.com/guttosm/cryptopulse/internal/api"
	"github.com/guttosm/cryptopulse/internal/ratelimit"
	"github.com/guttosm/cryptopulse/internal/service"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// InitializeApp wires all application dependencies around the given store
// and returns a fully configured Gin router, a cleanup function for graceful
// shutdown, and any error encountered during initialization.
//
// Responsibilities:
//   - Initializes the service layer (statistics over the store).
//   - Initializes the rate limiter from configuration.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes (ready once the store has data).
//
// The store is passed in already populated: ingestion must complete before
// the router starts serving, since store reads are not synchronized against
// concurrent loading.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp(store storage.PriceStore) (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Initialize service layer (business logic)
	svc := service.NewStatsService(store)

	// Per-client admission control for the query surface
	limiter := ratelimit.NewLimiter(
		cfg.RateLimit.Capacity,
		cfg.RateLimit.RefillTokens,
		cfg.RateLimit.RefillWindow,
	)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, limiter)

	// Register health and readiness probes
	healthHandler := api.NewHealthHandler(func() error {
		if len(store.Symbols()) == 0 {
			return fmt.Errorf("store is empty")
		}
		return nil
	})
	healthHandler.Register(router)

	// Nothing external to release; kept for symmetry with callers that
	// expect a shutdown hook.
	cleanup := func() {}

	return router, cleanup, nil
}
