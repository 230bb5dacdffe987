package main

//
//  @title           cryptopulse API
//  @version         1.0
//  @description     Crypto price statistics & recommendation service.
//  @termsOfService  https://github.com/guttosm/cryptopulse
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/cryptopulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        cryptos
//  @tag.description Endpoints for crypto statistics and recommendations
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/cryptopulse/config"
	_ "github.com/guttosm/cryptopulse/docs" // swagger docs
	"github.com/guttosm/cryptopulse/internal/app"
	"github.com/guttosm/cryptopulse/internal/ingestion"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/guttosm/cryptopulse/internal/storage"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the cryptopulse application.
//
// Startup sequence:
//  1. Load configuration and initialize the JSON logger.
//  2. Load all "*_values.csv" price files into the in-memory store.
//  3. Start the REST API; queries are only served once the load completed.
//
// Flags:
//   - --dir:      Directory with price CSV files. Defaults to PRICES_DIR config.
//   - --parallel: How many files to parse concurrently (0=auto up to CPU).
//   - --port:     Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	dir := flag.String("dir", config.AppConfig.Ingestion.PricesDir, "Directory with price CSV files")
	parallel := flag.Int("parallel", 0, "How many files to parse concurrently (0=auto up to CPU)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for the API server")
	flag.Parse()

	// Populate the store before serving any queries; store reads are not
	// synchronized against concurrent loading.
	store := storage.NewPriceStore()
	logger.L().Info().Str("dir", *dir).Msg("loading price history")
	if err := ingestion.ProcessDirectory(ctx, *dir, store, *parallel); err != nil {
		logger.L().Fatal().Err(err).Msg("ingestion failed")
	}

	router, cleanup, err := app.InitializeApp(store)
	if err != nil {
		logger.L().Fatal().Err(err).Msg("app init error")
	}

	server := startServer(router, *port)
	gracefulShutdown(ctx, server, cleanup)
}
