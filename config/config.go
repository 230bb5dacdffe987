package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, the ingestion source directory, and rate limiting.
//
// Example YAML/ENV equivalent:
//
//	SERVER_PORT=8080
//	PRICES_DIR=./data/prices
//	RATE_LIMIT_CAPACITY=60
//	RATE_LIMIT_REFILL_TOKENS=6
//	RATE_LIMIT_REFILL_WINDOW=60s
type Config struct {
	Server    ServerConfig    // HTTP server configuration
	Ingestion IngestionConfig // CSV ingestion settings
	RateLimit RateLimitConfig // Per-client admission control settings
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// IngestionConfig defines where the startup loader finds price files.
//
// Fields:
//   - PricesDir: directory scanned for "*_values.csv" files at startup.
type IngestionConfig struct {
	PricesDir string
}

// RateLimitConfig defines the token bucket guarding the query surface.
//
// Fields:
//   - Capacity: burst size of each per-client bucket.
//   - RefillTokens: tokens added per RefillWindow (greedy continuous refill).
//   - RefillWindow: refill accounting window.
type RateLimitConfig struct {
	Capacity     int
	RefillTokens int
	RefillWindow time.Duration
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Behavior:
//   - Sets defaults for all required fields.
//   - Reads environment variables automatically with viper.AutomaticEnv().
//   - Calls validateConfig() to ensure required fields are present.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("PRICES_DIR", "./data/prices")

	viper.SetDefault("RATE_LIMIT_CAPACITY", 60)
	viper.SetDefault("RATE_LIMIT_REFILL_TOKENS", 6)
	viper.SetDefault("RATE_LIMIT_REFILL_WINDOW", "60s")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Ingestion: IngestionConfig{
			PricesDir: viper.GetString("PRICES_DIR"),
		},
		RateLimit: RateLimitConfig{
			Capacity:     viper.GetInt("RATE_LIMIT_CAPACITY"),
			RefillTokens: viper.GetInt("RATE_LIMIT_REFILL_TOKENS"),
			RefillWindow: viper.GetDuration("RATE_LIMIT_REFILL_WINDOW"),
		},
	}

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// This avoids unexpected runtime failures due to incomplete configuration.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Ingestion.PricesDir == "" {
		missing = append(missing, "PRICES_DIR")
	}
	if AppConfig.RateLimit.Capacity <= 0 {
		missing = append(missing, "RATE_LIMIT_CAPACITY")
	}
	if AppConfig.RateLimit.RefillTokens <= 0 {
		missing = append(missing, "RATE_LIMIT_REFILL_TOKENS")
	}
	if AppConfig.RateLimit.RefillWindow <= 0 {
		missing = append(missing, "RATE_LIMIT_REFILL_WINDOW")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
