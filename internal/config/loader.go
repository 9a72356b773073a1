package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads and validates the configuration.
//
// The loading sequence is:
//  1. Enforce UTC to prevent timezone drift in forecast date handling.
//  2. Load a .env file via godotenv if present (non-fatal when absent).
//  3. Process envconfig struct tags to populate the Config.
//  4. Validate the struct with go-playground/validator.
func Load() (*Config, error) {
	time.Local = time.UTC

	// Local development convenience; production sets real env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}
