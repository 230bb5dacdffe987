package config

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

// TestLoadConfig_Defaults verifies that defaults are loaded.
func TestLoadConfig_Defaults(t *testing.T) {
	// Clear relevant env vars to ensure defaults are used
	_ = os.Unsetenv("SERVER_PORT")
	_ = os.Unsetenv("PRICES_DIR")
	_ = os.Unsetenv("RATE_LIMIT_CAPACITY")
	_ = os.Unsetenv("RATE_LIMIT_REFILL_TOKENS")
	_ = os.Unsetenv("RATE_LIMIT_REFILL_WINDOW")

	LoadConfig()

	if AppConfig.Server.Port != "8080" {
		t.Fatalf("expected default SERVER_PORT=8080, got %q", AppConfig.Server.Port)
	}
	if AppConfig.Ingestion.PricesDir != "./data/prices" {
		t.Fatalf("unexpected default prices dir: %q", AppConfig.Ingestion.PricesDir)
	}
	rl := AppConfig.RateLimit
	if rl.Capacity != 60 || rl.RefillTokens != 6 || rl.RefillWindow != 60*time.Second {
		t.Fatalf("unexpected rate limit defaults: %+v", rl)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("RATE_LIMIT_CAPACITY", "10")
	t.Setenv("RATE_LIMIT_REFILL_WINDOW", "30s")

	LoadConfig()

	if AppConfig.Server.Port != "9999" {
		t.Fatalf("expected SERVER_PORT override, got %q", AppConfig.Server.Port)
	}
	if AppConfig.RateLimit.Capacity != 10 || AppConfig.RateLimit.RefillWindow != 30*time.Second {
		t.Fatalf("unexpected overrides: %+v", AppConfig.RateLimit)
	}
}

// TestValidateConfig_Fatal uses a subprocess to assert that validateConfig triggers a fatal exit
// when required fields are missing.
func TestValidateConfig_Fatal(t *testing.T) {
	if os.Getenv("RUN_VALIDATE_FATAL") == "1" {
		// In child process: set empty AppConfig and call validateConfig() to trigger log.Fatalf (os.Exit)
		AppConfig = Config{}
		validateConfig()
		t.Fatalf("validateConfig should have exited the process")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run", "TestValidateConfig_Fatal")
	cmd.Env = append(os.Environ(), "RUN_VALIDATE_FATAL=1")
	err := cmd.Run()
	if err == nil {
		t.Fatalf("expected process to exit with error, got nil")
	}
}
