package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/flight-search/roundtrip-fare-finder/internal/infrastructure/logger"
)

// LoggerConfig configures RequestLoggerWithConfig.
type LoggerConfig struct {
	// SkipPaths lists path prefixes that are not logged, such as the health check.
	SkipPaths []string

	// SlowThreshold marks requests taking longer as slow. Zero disables the flag.
	SlowThreshold time.Duration
}

// DefaultLoggerConfig skips the health check and the swagger UI and flags
// requests slower than 30 seconds.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		SkipPaths:     []string{"/health", "/swagger"},
		SlowThreshold: 30 * time.Second,
	}
}

// RequestLogger returns middleware that logs every HTTP request on completion
// with method, path, status, duration, and client info.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return RequestLoggerWithConfig(log, LoggerConfig{})
}

// RequestLoggerWithConfig returns request logging middleware with custom configuration.
func RequestLoggerWithConfig(log *logger.Logger, config LoggerConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if skipPath(req.URL.Path, config.SkipPaths) {
				return next(c)
			}

			start := time.Now()

			err := next(c)
			if err != nil {
				// Let Echo's error handler write the response before logging it
				c.Error(err)
			}

			duration := time.Since(start)
			res := c.Response()
			status := res.Status

			var event *zerolog.Event
			switch {
			case status >= 500:
				event = log.Error()
			case status >= 400:
				event = log.Warn()
			default:
				event = log.Info()
			}

			event.
				Str("request_id", GetRequestID(c)).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Str("query", req.URL.RawQuery).
				Int("status", status).
				Int64("duration_ms", duration.Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent())

			if config.SlowThreshold > 0 && duration > config.SlowThreshold {
				event.Bool("slow", true)
			}

			event.Msg("HTTP request")

			// The error was already handled through c.Error
			return nil
		}
	}
}

func skipPath(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
