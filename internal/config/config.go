// Package config handles application configuration from environment variables
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"

	"github.com/Sternrassler/academy-cache/pkg/cache"
	"github.com/Sternrassler/academy-cache/pkg/logging"
)

const (
	// MinDefaultTTL and MaxDefaultTTL bound CACHE_DEFAULT_TTL (seconds).
	MinDefaultTTL = 30
	MaxDefaultTTL = 86400
)

// Config holds all application configuration
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Log   LogConfig
	Cache CacheConfig `envPrefix:"CACHE_"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// CacheConfig holds secondary store settings
type CacheConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	URL     string `env:"REDIS_URL"`
	Token   string `env:"REDIS_TOKEN"`

	// DefaultTTL is in seconds.
	DefaultTTL int           `env:"DEFAULT_TTL" envDefault:"300"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"250ms"`
	Prefix     string        `env:"PREFIX" envDefault:"academy"`
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value bounds
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Newf("PORT must be between 1-65535, got %d", c.Port)
	}
	if c.ShutdownTimeout <= 0 {
		return errors.Newf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.Cache.DefaultTTL < MinDefaultTTL || c.Cache.DefaultTTL > MaxDefaultTTL {
		return errors.Newf("CACHE_DEFAULT_TTL must be between %d-%d, got %d",
			MinDefaultTTL, MaxDefaultTTL, c.Cache.DefaultTTL)
	}
	if c.Cache.Timeout <= 0 {
		return errors.Newf("CACHE_TIMEOUT must be positive, got %s", c.Cache.Timeout)
	}
	return nil
}

// CacheActive returns true if the secondary store should connect: it must be
// enabled and have a URL.
func (c *Config) CacheActive() bool {
	return c.Cache.Enabled && c.Cache.URL != ""
}

// StoreOptions converts the cache settings to store options
func (c *Config) StoreOptions() cache.Options {
	return cache.Options{
		DefaultTTL: time.Duration(c.Cache.DefaultTTL) * time.Second,
		Timeout:    c.Cache.Timeout,
		Prefix:     c.Cache.Prefix,
	}
}

// Logging converts the log settings to a logger configuration
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = logging.LogLevel(c.Log.Level)
	lc.Pretty = c.Log.Pretty
	return lc
}
