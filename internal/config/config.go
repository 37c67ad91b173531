// Package config loads environment-controlled configuration, in the
// shape of the teacher's internal/config/config.go: a flat struct,
// os.Getenv + strconv conversions, sane defaults, an optional .env file.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the engine's soft bounds (spec.md §5) and the run-history
// store's connection string.
type Config struct {
	MaxWorklistSize int
	MaxCandidates   int
	StoreDSN        string
	RetentionRuns   int
}

// LoadConfig loads a .env file if present (ignoring its absence — it is
// optional everywhere this runs) and then reads environment variables,
// falling back to defaults.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MaxWorklistSize: 200_000,
		MaxCandidates:   10_000,
		StoreDSN:        "sgrep.db",
		RetentionRuns:   20,
	}

	if v := os.Getenv("SGREP_STORE_DSN"); v != "" {
		cfg.StoreDSN = v
	}

	if v := os.Getenv("SGREP_MAX_WORKLIST_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxWorklistSize = n
		}
	}

	if v := os.Getenv("SGREP_MAX_CANDIDATES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxCandidates = n
		}
	}

	if v := os.Getenv("SGREP_RETENTION_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.RetentionRuns = n
		}
	}

	return cfg
}
