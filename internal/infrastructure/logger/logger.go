// Package logger builds the zerolog loggers used by the service and the CLI.
// It supports JSON and console output with a configurable level.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// DefaultServiceName tags every entry unless overridden.
const DefaultServiceName = "award-finder"

// Config holds the logger options.
type Config struct {
	// Level is the minimum level (debug, info, warn, error)
	Level string

	// Format is json or console
	Format string

	// EnableCaller adds the caller location to each entry
	EnableCaller bool

	// ServiceName is added as the "service" field
	ServiceName string

	// NoColor disables console colors, e.g. when output is not a terminal
	NoColor bool
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: DefaultServiceName,
	}
}

// Logger wraps zerolog.Logger with domain context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	writer := output
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

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithContext returns a child logger with one extra string field.
func (l *Logger) WithContext(key, value string) *Logger {
	return &Logger{Logger: l.With().Str(key, value).Logger()}
}

// WithRequestID returns a child logger tagged with the HTTP request id.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithContext("request_id", requestID)
}

// WithProgram returns a child logger tagged with a loyalty program.
func (l *Logger) WithProgram(program string) *Logger {
	return l.WithContext("program", program)
}

// WithQuery returns a child logger carrying the fields of one atomic query.
func (l *Logger) WithQuery(index int, origin, destination, program, date string) *Logger {
	return &Logger{Logger: l.With().
		Int("query_index", index).
		Str("origin", origin).
		Str("destination", destination).
		Str("program", program).
		Str("date", date).
		Logger()}
}

// Zerolog returns the underlying zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.Logger
}
