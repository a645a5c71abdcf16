// Package testutil provides testing utilities for the academy API.
package testutil

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/academy-cache/pkg/cache"
)

// NewRedis starts an in-process Redis server that is stopped when the test
// ends.
func NewRedis(t testing.TB) *miniredis.Miniredis {
	t.Helper()
	return miniredis.RunT(t)
}

// NewStore returns a secondary store backed by a fresh miniredis instance.
// The returned server can be used to inspect keys, fast-forward TTLs or
// inject failures with SetError.
func NewStore(t testing.TB, opts cache.Options) (*miniredis.Miniredis, *cache.Store) {
	t.Helper()

	mr := NewRedis(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := cache.New(cache.NewRedisBackendFromClient(client), opts, zerolog.Nop())
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return mr, store
}

// UnreachableStore returns an enabled store whose backend points at a closed
// port.
func UnreachableStore(t testing.TB) *cache.Store {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	addr := mr.Addr()
	mr.Close()

	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	return cache.New(cache.NewRedisBackendFromClient(client), cache.DefaultOptions(), zerolog.Nop())
}
