// Package logger wraps zerolog with the fields shared by every fare search log line.
// Output is JSON by default; the console format is meant for local development.
package logger

import (
	"context"
	"io"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// DefaultServiceName is attached to every entry as the "service" field.
const DefaultServiceName = "roundtrip-fare-finder"

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Format is the output format (json, console)
	Format string `env:"LOG_FORMAT" envDefault:"json"`

	// EnableCaller adds caller information to log entries
	EnableCaller bool `env:"LOG_CALLER" envDefault:"false"`

	// NoColor disables ANSI colors in console output
	NoColor bool `env:"LOG_NO_COLOR" envDefault:"false"`

	// ServiceName is the name of the service for log context
	ServiceName string `env:"SERVICE_NAME" envDefault:"roundtrip-fare-finder"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: DefaultServiceName,
	}
}

// Logger wraps zerolog.Logger with fare search context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
// An unknown level falls back to info.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
			NoColor:    cfg.NoColor,
		}
	}

	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", service)

	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}

	return &Logger{Logger: ctx.Logger()}
}

// WithContext returns a child logger carrying one extra string field.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithFields returns a child logger carrying all given string fields.
// Keys are added in sorted order so output is stable.
func (l *Logger) WithFields(fields map[string]string) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ctx := l.With()
	for _, k := range keys {
		ctx = ctx.Str(k, fields[k])
	}
	return &Logger{Logger: ctx.Logger()}
}

// WithRequestID returns a logger with request ID context.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithContext("request_id", requestID)
}

// WithProvider returns a logger with provider context.
func (l *Logger) WithProvider(provider string) *Logger {
	return l.WithContext("provider", provider)
}

// WithSearch returns a logger tagged with the search mode (airport or country)
// and the origin airport.
func (l *Logger) WithSearch(mode, origin string) *Logger {
	return &Logger{Logger: l.With().Str("search_mode", mode).Str("origin", origin).Logger()}
}

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx carrying the request ID.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the request ID stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ForContext returns l tagged with the request ID carried by ctx, if any.
func (l *Logger) ForContext(ctx context.Context) *Logger {
	if id := RequestIDFromContext(ctx); id != "" {
		return l.WithRequestID(id)
	}
	return l
}

// Nop returns a disabled logger that produces no output.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Global is the process-wide logger, set once at startup.
var Global *Logger

// Init builds the global logger from cfg.
func Init(cfg Config) {
	Global = New(cfg)
}

// SetGlobal replaces the global logger.
func SetGlobal(l *Logger) {
	Global = l
}

// L returns the global logger, initializing it with DefaultConfig when unset.
func L() *Logger {
	if Global == nil {
		Init(DefaultConfig())
	}
	return Global
}

// Info returns an info level event from the global logger.
func Info() *zerolog.Event {
	return L().Info()
}

// Error returns an error level event from the global logger.
func Error() *zerolog.Event {
	return L().Error()
}

// Debug returns a debug level event from the global logger.
func Debug() *zerolog.Event {
	return L().Debug()
}

// Warn returns a warn level event from the global logger.
func Warn() *zerolog.Event {
	return L().Warn()
}

// Fatal returns a fatal level event from the global logger.
func Fatal() *zerolog.Event {
	return L().Fatal()
}
