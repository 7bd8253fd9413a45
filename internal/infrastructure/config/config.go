// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	DataDir         string
	LogLevel        string
	DefaultCurrency string

	// Exchange rate provider. The app id is a credential and has no default.
	RatesAPIURL       string
	RatesAppID        string
	RatesFreshness    time.Duration
	RatesHTTPTimeout  time.Duration
	RatesMaxRetries   int
	RatesRetryBackoff time.Duration
}

// Load loads configuration from environment variables and a .env file if present.
func Load() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEFAULT_CURRENCY", "USD")
	v.SetDefault("RATES_API_URL", "https://openexchangerates.org/api")
	v.SetDefault("RATES_APP_ID", "")
	v.SetDefault("RATES_FRESHNESS_WINDOW", "1h")
	v.SetDefault("RATES_HTTP_TIMEOUT", "10s")
	v.SetDefault("RATES_MAX_RETRIES", 3)
	v.SetDefault("RATES_RETRY_BACKOFF", "1s")

	v.AutomaticEnv()
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:            v.GetString("PORT"),
		DataDir:         v.GetString("DATA_DIR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		DefaultCurrency: strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_CURRENCY"))),
		RatesAPIURL:     v.GetString("RATES_API_URL"),
		RatesAppID:      v.GetString("RATES_APP_ID"),
		RatesMaxRetries: v.GetInt("RATES_MAX_RETRIES"),
	}

	var err error
	if cfg.RatesFreshness, err = duration(v, "RATES_FRESHNESS_WINDOW"); err != nil {
		return nil, err
	}
	if cfg.RatesHTTPTimeout, err = duration(v, "RATES_HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.RatesRetryBackoff, err = duration(v, "RATES_RETRY_BACKOFF"); err != nil {
		return nil, err
	}

	if cfg.Port == "" {
		return nil, errors.New("PORT must not be empty")
	}
	if cfg.RatesFreshness <= 0 {
		return nil, fmt.Errorf("RATES_FRESHNESS_WINDOW must be positive, got %s", cfg.RatesFreshness)
	}
	if cfg.RatesMaxRetries < 1 {
		cfg.RatesMaxRetries = 1
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "USD"
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}
