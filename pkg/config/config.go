package config

import (
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"ratatosk/pkg/engine"
)

// Config carries the driver-level settings. Every field has a default and
// can be overridden from the environment or a .env file next to the
// binary.
type Config struct {
	MaxDepth        int  // RATATOSK_DEPTH
	QuiescenceDepth int  // RATATOSK_QDEPTH
	ClockSeconds    int  // RATATOSK_CLOCK_SECONDS, per side in console games
	ShowStats       bool // RATATOSK_SHOW_STATS
}

// Load reads the environment, applying defaults for unset keys. Malformed
// values are errors, not silently defaulted.
func Load() (*Config, error) {
	cfg := &Config{
		MaxDepth:        engine.DefaultMaxDepth,
		QuiescenceDepth: engine.DefaultQuiescenceDepth,
		ClockSeconds:    300,
		ShowStats:       false,
	}
	if err := intVar(&cfg.MaxDepth, "RATATOSK_DEPTH"); err != nil {
		return nil, err
	}
	if err := intVar(&cfg.QuiescenceDepth, "RATATOSK_QDEPTH"); err != nil {
		return nil, err
	}
	if err := intVar(&cfg.ClockSeconds, "RATATOSK_CLOCK_SECONDS"); err != nil {
		return nil, err
	}
	if err := boolVar(&cfg.ShowStats, "RATATOSK_SHOW_STATS"); err != nil {
		return nil, err
	}
	return cfg, nil
}

func intVar(dst *int, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}

func boolVar(dst *bool, key string) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = v
	return nil
}
