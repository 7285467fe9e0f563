// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Search   SearchConfig
	Provider ProviderConfig
	Cache    CacheConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`

	// Must outlast SEARCH_TIMEOUT so a finished sweep can still be written
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"150s"`
}

// SearchConfig holds the sweep settings and the request guards applied by the HTTP layer.
// The guards bound the largest sweep, which must fit in Timeout at the provider rate.
type SearchConfig struct {
	Timeout     time.Duration `env:"SEARCH_TIMEOUT" envDefault:"120s"`
	TopK        int           `env:"SEARCH_TOP_K" envDefault:"10"`
	Concurrency int           `env:"SEARCH_CONCURRENCY" envDefault:"1"`

	MaxWindowDays int `env:"SEARCH_MAX_WINDOW_DAYS" envDefault:"31"`
	MaxStayDays   int `env:"SEARCH_MAX_STAY_DAYS" envDefault:"14"`
	MaxCountries  int `env:"SEARCH_MAX_COUNTRIES" envDefault:"3"`

	// Defaults for requests that omit dates or stay bounds
	DefaultWindowDays int `env:"SEARCH_DEFAULT_WINDOW_DAYS" envDefault:"30"`
	DefaultMinDays    int `env:"SEARCH_DEFAULT_MIN_DAYS" envDefault:"1"`
	DefaultMaxDays    int `env:"SEARCH_DEFAULT_MAX_DAYS" envDefault:"14"`

	// Timezone decides which calendar day "today" is
	Timezone string `env:"SEARCH_TIMEZONE" envDefault:"UTC"`
}

// ProviderConfig holds the fare finder transport settings.
type ProviderConfig struct {
	BaseURL       string        `env:"PROVIDER_BASE_URL" envDefault:"https://services-api.ryanair.com/farfnd/v4"`
	Currency      string        `env:"PROVIDER_CURRENCY" envDefault:"EUR"`
	Market        string        `env:"PROVIDER_MARKET" envDefault:"en-gb"`
	Timeout       time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"5s"`
	RateLimit     float64       `env:"PROVIDER_RATE_LIMIT" envDefault:"10"`
	Burst         int           `env:"PROVIDER_BURST" envDefault:"5"`
	RetryAttempts int           `env:"PROVIDER_RETRY_ATTEMPTS" envDefault:"3"`
}

// CacheConfig holds the Redis quote cache settings. An empty address disables the cache.
type CacheConfig struct {
	RedisAddr     string        `env:"CACHE_REDIS_ADDR"`
	RedisPassword string        `env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `env:"CACHE_REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:"json"`
	Caller  bool   `env:"LOG_CALLER" envDefault:"false"`
	NoColor bool   `env:"LOG_NO_COLOR" envDefault:"false"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
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

	positive := []struct {
		name  string
		value time.Duration
	}{
		{"SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout},
		{"SEARCH_TIMEOUT", cfg.Search.Timeout},
		{"PROVIDER_TIMEOUT", cfg.Provider.Timeout},
		{"CACHE_TTL", cfg.Cache.TTL},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive", p.name)
		}
	}

	if cfg.Provider.Timeout >= cfg.Search.Timeout {
		return fmt.Errorf("PROVIDER_TIMEOUT (%s) should be less than SEARCH_TIMEOUT (%s)",
			cfg.Provider.Timeout, cfg.Search.Timeout)
	}
	if cfg.Search.Timeout >= cfg.Server.WriteTimeout {
		return fmt.Errorf("SEARCH_TIMEOUT (%s) must be less than SERVER_WRITE_TIMEOUT (%s)",
			cfg.Search.Timeout, cfg.Server.WriteTimeout)
	}

	atLeastOne := []struct {
		name  string
		value int
	}{
		{"SEARCH_TOP_K", cfg.Search.TopK},
		{"SEARCH_CONCURRENCY", cfg.Search.Concurrency},
		{"SEARCH_MAX_WINDOW_DAYS", cfg.Search.MaxWindowDays},
		{"SEARCH_MAX_STAY_DAYS", cfg.Search.MaxStayDays},
		{"SEARCH_MAX_COUNTRIES", cfg.Search.MaxCountries},
		{"SEARCH_DEFAULT_WINDOW_DAYS", cfg.Search.DefaultWindowDays},
		{"SEARCH_DEFAULT_MIN_DAYS", cfg.Search.DefaultMinDays},
		{"PROVIDER_BURST", cfg.Provider.Burst},
		{"PROVIDER_RETRY_ATTEMPTS", cfg.Provider.RetryAttempts},
	}
	for _, v := range atLeastOne {
		if v.value < 1 {
			return fmt.Errorf("%s must be at least 1, got %d", v.name, v.value)
		}
	}

	if cfg.Search.DefaultMaxDays < cfg.Search.DefaultMinDays {
		return fmt.Errorf("SEARCH_DEFAULT_MAX_DAYS (%d) must not be less than SEARCH_DEFAULT_MIN_DAYS (%d)",
			cfg.Search.DefaultMaxDays, cfg.Search.DefaultMinDays)
	}
	if cfg.Search.DefaultMaxDays > cfg.Search.MaxStayDays {
		return fmt.Errorf("SEARCH_DEFAULT_MAX_DAYS (%d) must not exceed SEARCH_MAX_STAY_DAYS (%d)",
			cfg.Search.DefaultMaxDays, cfg.Search.MaxStayDays)
	}
	// The default window runs from the start date to start+DefaultWindowDays inclusive
	if cfg.Search.DefaultWindowDays+1 > cfg.Search.MaxWindowDays {
		return fmt.Errorf("SEARCH_DEFAULT_WINDOW_DAYS (%d) spans %d days and must not exceed SEARCH_MAX_WINDOW_DAYS (%d)",
			cfg.Search.DefaultWindowDays, cfg.Search.DefaultWindowDays+1, cfg.Search.MaxWindowDays)
	}

	if _, err := timeutil.GetLocation(cfg.Search.Timezone); err != nil {
		return fmt.Errorf("SEARCH_TIMEZONE: %w", err)
	}

	if cfg.Provider.RateLimit < 0 {
		return fmt.Errorf("PROVIDER_RATE_LIMIT must not be negative, got %g", cfg.Provider.RateLimit)
	}
	if d := cfg.MinSweepDuration(); d >= cfg.Search.Timeout {
		return fmt.Errorf("the largest search (%d quotes at PROVIDER_RATE_LIMIT %g) needs at least %s and cannot finish within SEARCH_TIMEOUT (%s); lower SEARCH_MAX_WINDOW_DAYS or SEARCH_MAX_STAY_DAYS, or raise the rate or timeout",
			cfg.MaxQuotesPerSearch(), cfg.Provider.RateLimit, d.Round(time.Second), cfg.Search.Timeout)
	}
	if len(cfg.Provider.Currency) != 3 {
		return fmt.Errorf("PROVIDER_CURRENCY must be a 3-letter ISO 4217 code, got %q", cfg.Provider.Currency)
	}
	if cfg.Cache.RedisDB < 0 {
		return fmt.Errorf("CACHE_REDIS_DB must not be negative, got %d", cfg.Cache.RedisDB)
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

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// CacheEnabled reports whether a Redis address is configured.
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisAddr != ""
}

// MaxQuotesPerSearch returns how many quotes the largest request the guards
// accept sweeps: a SEARCH_MAX_WINDOW_DAYS window with stays 1..SEARCH_MAX_STAY_DAYS.
func (c *Config) MaxQuotesPerSearch() int {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	window := domain.NewDateWindow(start, start.AddDate(0, 0, c.Search.MaxWindowDays-1))
	return domain.ExactTripleCount(window, domain.StayRange{MinDays: 1, MaxDays: c.Search.MaxStayDays})
}

// MinSweepDuration returns the time the provider rate limit alone needs for
// the largest accepted search, after the initial burst. Zero when unlimited.
func (c *Config) MinSweepDuration() time.Duration {
	if c.Provider.RateLimit <= 0 {
		return 0
	}
	paced := c.MaxQuotesPerSearch() - c.Provider.Burst
	if paced <= 0 {
		return 0
	}
	return time.Duration(float64(paced) * float64(time.Second) / c.Provider.RateLimit)
}
