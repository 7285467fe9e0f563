// Package main is the entry point for the round-trip fare finder service.
//
//	@title						Round-Trip Fare Finder API
//	@version					1.0.0
//	@description				Sweeps every outbound/inbound date pair of a travel window and returns the cheapest round trips to an airport or to a set of countries.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/roundtrip-fare-finder/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/flight-search/roundtrip-fare-finder/internal/config"

	// Import generated docs for swagger
	_ "github.com/flight-search/roundtrip-fare-finder/docs"

	// Application layers
	triphttp "github.com/flight-search/roundtrip-fare-finder/internal/adapter/http"
	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/http/middleware"
	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/provider/cache"
	"github.com/flight-search/roundtrip-fare-finder/internal/adapter/provider/ryanair"
	"github.com/flight-search/roundtrip-fare-finder/internal/domain"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/ratelimit"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/retry"
	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/timeutil"
	"github.com/flight-search/roundtrip-fare-finder/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("timezone", cfg.Search.Timezone).
		Msg("Configuration loaded")

	// Build the quoter chain: rate limited adapter, optionally behind the Redis cache
	quoter, closeCache := setupQuoter(cfg, log)
	defer closeCache()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	middleware.Setup(e, log)

	// Setup routes
	setupRoutes(e, cfg, quoter, log)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// setupLogger builds the service logger and installs it as the global one.
func setupLogger(cfg *config.Config) *logger.Logger {
	log := logger.New(logger.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		EnableCaller: cfg.Logging.Caller,
		NoColor:      cfg.Logging.NoColor,
		ServiceName:  logger.DefaultServiceName,
	})
	logger.SetGlobal(log)
	return log
}

// setupQuoter wires the fare finder adapter and, when CACHE_REDIS_ADDR is set,
// the Redis cache in front of it. An unreachable Redis is logged and skipped.
func setupQuoter(cfg *config.Config, log *logger.Logger) (domain.PriceQuoter, func()) {
	limiter := ratelimit.NewProviderLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Provider.RateLimit,
		Burst:             cfg.Provider.Burst,
	})

	adapter := ryanair.NewAdapter(ryanair.Config{
		BaseURL:  cfg.Provider.BaseURL,
		Currency: cfg.Provider.Currency,
		Market:   cfg.Provider.Market,
		Timeout:  cfg.Provider.Timeout,
		Timezone: cfg.Search.Timezone,
		Retry:    retry.QuoteConfig.WithMaxAttempts(cfg.Provider.RetryAttempts),
	},
		ryanair.WithLimiter(limiter),
		ryanair.WithLogger(log),
	)

	if !cfg.CacheEnabled() {
		log.Info().Msg("Quote cache disabled")
		return adapter, func() {}
	}

	store, err := cache.NewRedisStore(context.Background(), cache.RedisConfig{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("Redis unreachable, continuing without quote cache")
		return adapter, func() {}
	}

	log.Info().
		Str("addr", cfg.Cache.RedisAddr).
		Dur("ttl", cfg.Cache.TTL).
		Msg("Quote cache enabled")

	cached := cache.NewCachedQuoter(adapter, store, cache.Config{
		TTL:      cfg.Cache.TTL,
		Currency: adapter.Currency(),
		Market:   adapter.Market(),
		Logger:   log,
	})
	return cached, func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing Redis connection")
		}
	}
}

// setupRoutes configures the HTTP routes.
func setupRoutes(e *echo.Echo, cfg *config.Config, quoter domain.PriceQuoter, log *logger.Logger) {
	tripUseCase := usecase.NewTripSearchUseCase(quoter, &usecase.Config{
		Timeout:     cfg.Search.Timeout,
		TopK:        cfg.Search.TopK,
		Concurrency: cfg.Search.Concurrency,
		Logger:      log,
	})

	tripHandler := triphttp.NewTripHandler(tripUseCase,
		triphttp.WithLocation(timeutil.MustGetLocation(cfg.Search.Timezone)),
		triphttp.WithProviderName(quoter.Name()),
		triphttp.WithLimits(triphttp.Limits{
			MaxWindowDays:     cfg.Search.MaxWindowDays,
			MaxStayDays:       cfg.Search.MaxStayDays,
			MaxCountries:      cfg.Search.MaxCountries,
			DefaultWindowDays: cfg.Search.DefaultWindowDays,
			DefaultMinDays:    cfg.Search.DefaultMinDays,
			DefaultMaxDays:    cfg.Search.DefaultMaxDays,
		}),
	)

	triphttp.RegisterRoutes(e, tripHandler)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
