// Package usecase contains the business logic for round-trip fare searches.
// It sweeps a date window, asks the quoting provider about every date pair and
// ranks the matching offers per destination.
package usecase

import (
	"time"

	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
)

// Default values for Config.
const (
	DefaultTopK        = 10
	DefaultConcurrency = 1
	DefaultTimeout     = 90 * time.Second
)

// Config contains configuration options for the use case.
type Config struct {
	// Timeout bounds a whole sweep. Zero or negative means DefaultTimeout.
	Timeout time.Duration

	// TopK is the number of offers kept per destination bucket.
	TopK int

	// Concurrency is the number of quotes requested at once.
	// 1 gives the sequential sweep.
	Concurrency int

	// Logger receives sweep progress. Nil disables logging.
	Logger *logger.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:     DefaultTimeout,
		TopK:        DefaultTopK,
		Concurrency: DefaultConcurrency,
		Logger:      logger.Nop(),
	}
}

// merge fills the zero values of c from the defaults.
func (c *Config) merge() Config {
	cfg := DefaultConfig()
	if c == nil {
		return cfg
	}
	if c.Timeout > 0 {
		cfg.Timeout = c.Timeout
	}
	if c.TopK > 0 {
		cfg.TopK = c.TopK
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Logger != nil {
		cfg.Logger = c.Logger
	}
	return cfg
}
