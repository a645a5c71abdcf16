package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates the requested key was not found.
	ErrCacheMiss = errors.New("cache miss")

	// ErrDisabled is returned by Ping on a disabled store.
	ErrDisabled = errors.New("cache store disabled")

	// ErrTypeMismatch is returned by Memoize when concurrent callers share a
	// key but expect different value types.
	ErrTypeMismatch = errors.New("cache value type mismatch")
)

// Backend is the client of the external key-value service. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Init establishes the connection. It may be called more than once.
	Init(ctx context.Context) error

	// Get returns ErrCacheMiss when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value; the backend owns expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// RedisBackend is a Backend on top of go-redis. The underlying client holds
// a connection pool and is safe for concurrent use.
type RedisBackend struct {
	client     *redis.Client
	ownsClient bool
}

var _ Backend = (*RedisBackend)(nil)

// NewRedisBackend parses a redis:// or rediss:// URL. A non-empty token
// overrides the URL password. No connection is made until Init or the first
// command.
func NewRedisBackend(url, token string) (*RedisBackend, error) {
	if url == "" {
		return nil, errors.New("redis url is required")
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	if token != "" {
		opts.Password = token
	}
	// One attempt per call; the store treats failures as misses.
	opts.MaxRetries = -1

	return &RedisBackend{
		client:     redis.NewClient(opts),
		ownsClient: true,
	}, nil
}

// NewRedisBackendFromClient wraps an existing client. The caller owns the
// client lifecycle and Close is a no-op.
func NewRedisBackendFromClient(client *redis.Client) *RedisBackend {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisBackend{client: client}
}

// Client returns the underlying redis client.
func (b *RedisBackend) Client() *redis.Client {
	return b.client
}

// Init verifies connectivity.
func (b *RedisBackend) Init(ctx context.Context) error {
	return b.Ping(ctx)
}

// Get retrieves a raw value.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, errors.Wrap(err, "redis get")
	}
	return data, nil
}

// Set stores a raw value with TTL.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := b.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return errors.Wrap(err, "redis set")
	}
	return nil
}

// Delete removes a key.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

// Ping checks the connection.
func (b *RedisBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return errors.Wrap(err, "redis ping")
	}
	return nil
}

// Close releases the client if this backend created it.
func (b *RedisBackend) Close() error {
	if !b.ownsClient {
		return nil
	}
	return b.client.Close()
}
