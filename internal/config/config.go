// Package config provides application configuration management.
// Service settings come from environment variables, optionally seeded from a .env file;
// CLI searches are described by a YAML file (see LoadSearchFile).
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// ErrMissingAPIKey indicates no seats.aero partner key was configured.
var ErrMissingAPIKey = errors.New("SEATS_AERO_API_KEY is required")

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Timeouts    TimeoutConfig
	Logging     LoggingConfig
	App         AppConfig
	SeatsAero   SeatsAeroConfig
	Aggregation AggregationConfig
	Budget      BudgetConfig
	Cache       CacheConfig
	Currency    CurrencyConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"75s"`
}

// TimeoutConfig bounds a whole search and each atomic query in it.
type TimeoutConfig struct {
	GlobalSearch time.Duration `env:"TIMEOUT_GLOBAL_SEARCH" envDefault:"60s"`
	PerQuery     time.Duration `env:"TIMEOUT_PER_QUERY" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// SeatsAeroConfig holds the partner API settings.
type SeatsAeroConfig struct {
	APIKey  string `env:"SEATS_AERO_API_KEY"`
	BaseURL string `env:"SEATS_AERO_BASE_URL" envDefault:"https://seats.aero/partnerapi"`
	Take    int    `env:"SEATS_AERO_TAKE" envDefault:"500"`

	// RequestsPerSecond paces calls client-side; 0 disables pacing
	RequestsPerSecond float64 `env:"SEATS_AERO_REQUESTS_PER_SECOND" envDefault:"0"`

	// MaxAttempts bounds the calls per query, retries included
	MaxAttempts int `env:"SEATS_AERO_MAX_ATTEMPTS" envDefault:"3"`
}

// AggregationConfig bounds the fan-out of a search.
type AggregationConfig struct {
	Concurrency int `env:"AGGREGATION_CONCURRENCY" envDefault:"4"`
	MaxQueries  int `env:"AGGREGATION_MAX_QUERIES" envDefault:"200"`
}

// BudgetConfig holds the daily API call budget.
// With REDIS_URL set the counter is shared between instances.
type BudgetConfig struct {
	// DailyLimit is the number of calls allowed per day; 0 means unlimited
	DailyLimit int64  `env:"BUDGET_DAILY_LIMIT" envDefault:"1000"`
	Timezone   string `env:"BUDGET_TIMEZONE" envDefault:"UTC"`
	RedisURL   string `env:"REDIS_URL"`
}

// CacheConfig holds the response cache settings. The cache needs REDIS_URL.
type CacheConfig struct {
	Enabled bool          `env:"CACHE_ENABLED" envDefault:"false"`
	TTL     time.Duration `env:"CACHE_TTL" envDefault:"15m"`
}

// CurrencyConfig holds the exchange rate source.
type CurrencyConfig struct {
	RatesURL string        `env:"CURRENCY_RATES_URL" envDefault:"https://api.exchangerate-api.com/v4/latest"`
	TTL      time.Duration `env:"CURRENCY_RATES_TTL" envDefault:"12h"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalSearch <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_SEARCH must be positive")
	}
	if cfg.Timeouts.PerQuery <= 0 {
		return fmt.Errorf("TIMEOUT_PER_QUERY must be positive")
	}

	if cfg.Timeouts.PerQuery >= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("TIMEOUT_PER_QUERY (%s) should be less than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Timeouts.PerQuery, cfg.Timeouts.GlobalSearch)
	}
	if cfg.Server.WriteTimeout <= cfg.Timeouts.GlobalSearch {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT (%s) should be greater than TIMEOUT_GLOBAL_SEARCH (%s)",
			cfg.Server.WriteTimeout, cfg.Timeouts.GlobalSearch)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if cfg.SeatsAero.BaseURL == "" {
		return fmt.Errorf("SEATS_AERO_BASE_URL must not be empty")
	}
	if cfg.SeatsAero.Take < 1 || cfg.SeatsAero.Take > 1000 {
		return fmt.Errorf("SEATS_AERO_TAKE must be between 1 and 1000, got %d", cfg.SeatsAero.Take)
	}
	if cfg.SeatsAero.RequestsPerSecond < 0 {
		return fmt.Errorf("SEATS_AERO_REQUESTS_PER_SECOND must not be negative")
	}
	if cfg.SeatsAero.MaxAttempts < 1 {
		return fmt.Errorf("SEATS_AERO_MAX_ATTEMPTS must be at least 1, got %d", cfg.SeatsAero.MaxAttempts)
	}

	if cfg.Aggregation.Concurrency < 1 {
		return fmt.Errorf("AGGREGATION_CONCURRENCY must be at least 1, got %d", cfg.Aggregation.Concurrency)
	}
	if cfg.Aggregation.MaxQueries < 1 {
		return fmt.Errorf("AGGREGATION_MAX_QUERIES must be at least 1, got %d", cfg.Aggregation.MaxQueries)
	}

	if cfg.Budget.DailyLimit < 0 {
		return fmt.Errorf("BUDGET_DAILY_LIMIT must not be negative, got %d", cfg.Budget.DailyLimit)
	}
	if _, err := time.LoadLocation(cfg.Budget.Timezone); err != nil {
		return fmt.Errorf("BUDGET_TIMEZONE %q is not a valid IANA timezone", cfg.Budget.Timezone)
	}

	if cfg.Cache.Enabled && cfg.Budget.RedisURL == "" {
		return fmt.Errorf("CACHE_ENABLED requires REDIS_URL")
	}
	if cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}

	if cfg.Currency.RatesURL == "" {
		return fmt.Errorf("CURRENCY_RATES_URL must not be empty")
	}
	if cfg.Currency.TTL <= 0 {
		return fmt.Errorf("CURRENCY_RATES_TTL must be positive")
	}

	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no partner key is set.
// Entry points that talk to seats.aero call it before wiring the adapter.
func (c *Config) RequireAPIKey() error {
	if c.SeatsAero.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}
