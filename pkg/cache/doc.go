// Package cache provides the secondary cache store: an optional, TTL-bound
// key-value cache backed by Redis that collaborators use to memoize
// expensive computations.
//
// The store is fail-open. When it is disabled, unreachable, slow or returns
// garbage, reads are misses and writes are dropped; callers never see an
// error from the store itself, so correctness never depends on it.
//
// # Basic Usage
//
//	backend, err := cache.NewRedisBackend("redis://localhost:6379/0", token)
//	if err != nil {
//		return err
//	}
//	store := cache.New(backend, cache.DefaultOptions(), logger)
//	if err := store.Init(ctx); err != nil {
//		logger.Warn().Err(err).Msg("cache unreachable, continuing without it")
//	}
//	defer store.Close()
//
//	// Typed access, ttl <= 0 uses Options.DefaultTTL
//	cache.Set(ctx, store, "course:42:stats", stats, 0)
//	stats, ok := cache.Get[CourseStats](ctx, store, "course:42:stats")
//
//	// Cache-aside with collapsed concurrent misses
//	stats, err := cache.Memoize(ctx, store, key.String(), time.Minute, computeStats)
//
// # Disabled Store
//
//	store := cache.Disabled()
//	_, ok := cache.Get[int](ctx, store, "k") // always false
//	cache.Set(ctx, store, "k", 1, 0)         // no-op
//
// # Metrics
//
//   - academy_store_hits_total - Cache hits
//   - academy_store_misses_total - Cache misses (including absorbed failures)
//   - academy_store_errors_total{operation} - Backend, encode and decode errors
//   - academy_store_operation_duration_seconds{operation} - Backend call latency
//
// Values are encoded with msgpack. Every backend call is bounded by
// Options.Timeout and attempted exactly once.
package cache
