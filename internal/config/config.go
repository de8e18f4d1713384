package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	ScriptURL        string
	HTTPPort         string
	OrderPrefix      string
	SyncTimeout      time.Duration
	AutoSyncPayments bool
}

// Load reads configuration from the environment, after loading a .env file
// when one is present, with reasonable defaults.
func Load() Config {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8081"
	}
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8081", port)
		port = "8081"
	}

	prefix := os.Getenv("ORDER_PREFIX")
	if prefix == "" {
		prefix = "NTS"
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("SYNC_TIMEOUT_SECONDS"); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		} else {
			log.Printf("invalid SYNC_TIMEOUT_SECONDS value %q, keeping 15s", raw)
		}
	}

	autoSync := false
	if raw := os.Getenv("AUTO_SYNC_PAYMENTS"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("invalid AUTO_SYNC_PAYMENTS value %q, keeping false", raw)
		} else {
			autoSync = parsed
		}
	}

	return Config{
		ScriptURL:        os.Getenv("SCRIPT_URL"),
		HTTPPort:         port,
		OrderPrefix:      prefix,
		SyncTimeout:      timeout,
		AutoSyncPayments: autoSync,
	}
}
