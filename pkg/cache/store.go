package cache

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is used when Set is called with ttl <= 0 and no default
	// was configured.
	DefaultTTL = 5 * time.Minute

	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 250 * time.Millisecond
)

// Options configures a Store.
type Options struct {
	// DefaultTTL applies when Set is called with ttl <= 0.
	DefaultTTL time.Duration

	// Timeout bounds each backend call. A timed out call is a miss.
	Timeout time.Duration

	// Prefix namespaces all keys ("prefix:key"). Empty means no prefix.
	Prefix string
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		DefaultTTL: DefaultTTL,
		Timeout:    DefaultTimeout,
		Prefix:     "academy",
	}
}

// Store is the fail-open secondary cache. A Store with no backend is
// disabled: every read misses and every write is dropped.
type Store struct {
	backend Backend
	opts    Options
	logger  zerolog.Logger

	initOnce sync.Once
	initErr  error

	group singleflight.Group
}

// New creates a Store over backend. A nil backend yields a disabled store.
func New(backend Backend, opts Options, logger zerolog.Logger) *Store {
	if opts.DefaultTTL <= 0 {
		opts.DefaultTTL = DefaultTTL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Store{
		backend: backend,
		opts:    opts,
		logger:  logger.With().Str("component", "cache-store").Logger(),
	}
}

// Disabled returns a store that never caches.
func Disabled() *Store {
	return New(nil, DefaultOptions(), zerolog.Nop())
}

// Enabled reports whether a backend is configured.
func (s *Store) Enabled() bool {
	return s != nil && s.backend != nil
}

// Options returns the effective options.
func (s *Store) Options() Options {
	return s.opts
}

// Init connects the backend once. The error is informational: a store whose
// backend failed to initialize keeps operating fail-open.
func (s *Store) Init(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	s.initOnce.Do(func() {
		ctx, cancel := s.callCtx(ctx)
		defer cancel()
		if err := s.backend.Init(ctx); err != nil {
			CacheErrors.WithLabelValues("init").Inc()
			s.initErr = errors.Wrap(err, "init cache backend")
		}
	})
	return s.initErr
}

// Ping checks backend reachability. Returns ErrDisabled for a disabled store.
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	ctx, cancel := s.callCtx(ctx)
	defer cancel()
	return s.backend.Ping(ctx)
}

// Close releases the backend.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.backend.Close()
}

// TTL resolves a requested ttl against the default.
func (s *Store) TTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.opts.DefaultTTL
	}
	return ttl
}

// GetBytes returns the raw value for key. Any failure is a miss.
func (s *Store) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	if !s.Enabled() {
		return nil, false
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	start := time.Now()
	data, err := s.backend.Get(ctx, s.key(key))
	OperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())

	if err != nil {
		CacheMisses.Inc()
		if !errors.Is(err, ErrCacheMiss) {
			CacheErrors.WithLabelValues("get").Inc()
			s.warn(err, "get", key)
			return nil, false
		}
		s.logger.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}

	CacheHits.Inc()
	s.logger.Debug().Str("key", key).Msg("Cache hit")
	return data, true
}

// SetBytes stores a raw value. ttl <= 0 uses the default TTL. Failures are
// logged and dropped.
func (s *Store) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if !s.Enabled() {
		return
	}

	ttl = s.TTL(ttl)
	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	start := time.Now()
	err := s.backend.Set(ctx, s.key(key), value, ttl)
	OperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())

	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		s.warn(err, "set", key)
		return
	}
	s.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cached value")
}

// Delete removes key. Failures are logged and dropped.
func (s *Store) Delete(ctx context.Context, key string) {
	if !s.Enabled() {
		return
	}

	ctx, cancel := s.callCtx(ctx)
	defer cancel()

	if err := s.backend.Delete(ctx, s.key(key)); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		s.warn(err, "delete", key)
	}
}

func (s *Store) key(key string) string {
	if s.opts.Prefix == "" {
		return key
	}
	return s.opts.Prefix + ":" + key
}

func (s *Store) callCtx(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, s.opts.Timeout)
}

func (s *Store) warn(err error, operation, key string) {
	event := s.logger.Warn().Err(err).Str("operation", operation).Str("key", key)
	if errors.Is(err, context.DeadlineExceeded) {
		event = event.Bool("timeout", true)
	}
	event.Msg("Cache store error, treating as miss")
}
