package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Recover - Third, catches panics and returns 500 (wraps handlers)
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, DefaultLoggerConfig(), DefaultRecoveryConfig())
}

// SetupWithConfig registers middleware with custom logging and recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, loggerConfig LoggerConfig, recoveryConfig RecoveryConfig) {
	e.Use(Chain(log, loggerConfig, recoveryConfig)...)
}

// Chain returns all middleware as a slice for use with route groups.
func Chain(log *logger.Logger, loggerConfig LoggerConfig, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLoggerWithConfig(log, loggerConfig),
		RecoverWithConfig(log, recoveryConfig),
	}
}
