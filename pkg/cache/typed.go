package cache

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Get returns the value stored under key decoded as T. Misses, backend
// failures and decode failures all report false.
func Get[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var zero T

	data, ok := s.GetBytes(ctx, key)
	if !ok {
		return zero, false
	}

	var value T
	if err := msgpack.Unmarshal(data, &value); err != nil {
		CacheErrors.WithLabelValues("decode").Inc()
		s.warn(errors.Wrap(err, "msgpack decode"), "decode", key)
		return zero, false
	}
	return value, true
}

// Set encodes value and stores it under key. ttl <= 0 uses the store's
// default TTL. Set never fails the caller.
func Set[T any](ctx context.Context, s *Store, key string, value T, ttl time.Duration) {
	if !s.Enabled() {
		return
	}

	data, err := msgpack.Marshal(value)
	if err != nil {
		CacheErrors.WithLabelValues("encode").Inc()
		s.warn(errors.Wrap(err, "msgpack encode"), "encode", key)
		return
	}
	s.SetBytes(ctx, key, data, ttl)
}

// Delete removes key from the store.
func Delete(ctx context.Context, s *Store, key string) {
	s.Delete(ctx, key)
}

// Memoize returns the cached value for key or computes it with fn and stores
// it for ttl (<= 0 uses the default TTL). Concurrent misses for the same key
// share a single fn call, which is not cancelled when one of the waiting
// callers goes away. Errors from fn are returned and never cached.
func Memoize[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if value, ok := Get[T](ctx, s, key); ok {
		return value, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		value, err := fn(shared)
		if err != nil {
			return value, err
		}
		Set(shared, s, key, value, ttl)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	value, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "key %q holds %T, want %T", key, v, zero)
	}
	return value, nil
}
