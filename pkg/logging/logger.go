// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer

	// Service is added to every entry as "service" when set.
	Service string
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Pretty:  false,
		Output:  os.Stderr,
		Service: "academy-api",
	}
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	ctx := zerolog.New(output).With().Timestamp()
	if cfg.Service != "" {
		ctx = ctx.Str("service", cfg.Service)
	}
	logger := ctx.Logger()

	log.Logger = logger

	return logger
}

// ParseLevel converts LogLevel to zerolog.Level. Unknown values are Info.
func ParseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(string(level))) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Secondary store hits/misses (key, ttl)
//   - Cache-Control and ETag decisions per route
//   - 304 Not Modified short-circuits
//
// Info: Normal operation events
//   - Server startup/shutdown
//   - Secondary store enabled/disabled at startup
//   - Route policy table summary
//
// Warn: Warning conditions that don't prevent operation
//   - Secondary store errors and timeouts (treated as miss)
//   - Secondary store unreachable at startup
//   - Response write failures
//
// Error: Error conditions requiring attention
//   - Handler failures (5xx)
//   - Payload encoding failures
//   - Configuration errors
//
// Context Fields:
//   - component: emitting package (interceptor, cache-store, server)
//   - route: "METHOD pattern" of the matched route
//   - status_code: HTTP status code
//   - etag: computed ETag
//   - cache_control: emitted Cache-Control value
//   - key: secondary store key
//   - operation: secondary store operation (get, set, delete, decode, encode)
//   - ttl: secondary store entry TTL
