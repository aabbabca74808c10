package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Load reads configuration from environment variables.
func Load() (App, error) {
	var cfg App
	if err := env.Parse(&cfg); err != nil {
		return App{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
