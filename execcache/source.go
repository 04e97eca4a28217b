// Package execcache backs a core/xexec.CachingPromise with Redis, so the
// single computed value survives process restarts and is shared across
// instances, not just across Executions within one process.
package execcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/execkit/core/engine"
)

// Codec converts between a cached value and its wire representation.
// Callers typically supply json.Marshal/json.Unmarshal.
type Codec[T any] struct {
	Encode func(T) ([]byte, error)
	Decode func([]byte) (T, error)
}

// RedisBackedSource wraps a Promise producer so its result is read from (and
// written back to) a Redis key, ahead of falling back to compute.
type RedisBackedSource[T any] struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	codec  Codec[T]
	ctrl   *engine.Controller
	miss   func(*engine.Execution) engine.Promise[T]
}

// NewRedisBackedSource builds a source function suitable for
// xexec.NewCachingPromise's constructor argument: it first checks Redis,
// and only invokes miss (the expensive producer) on a cache miss, writing
// the result back to Redis with the given ttl before returning it.
func NewRedisBackedSource[T any](
	ctrl *engine.Controller,
	client *redis.Client,
	key string,
	ttl time.Duration,
	codec Codec[T],
	miss func(*engine.Execution) engine.Promise[T],
) func(*engine.Execution) engine.Promise[T] {
	s := &RedisBackedSource[T]{client: client, key: key, ttl: ttl, codec: codec, ctrl: ctrl, miss: miss}
	return s.get
}

func (s *RedisBackedSource[T]) get(exec *engine.Execution) engine.Promise[T] {
	return engine.Blocking(s.ctrl, func() (T, error) {
		var zero T
		raw, err := s.client.Get(context.Background(), s.key).Bytes()
		if err == nil {
			return s.codec.Decode(raw)
		}
		if !errors.Is(err, redis.Nil) {
			return zero, err
		}
		return zero, errCacheMiss
	}).OnError(func(err error) engine.Promise[T] {
		if !errors.Is(err, errCacheMiss) {
			return engine.OfError[T](err)
		}
		return s.computeAndStore(exec)
	})
}

var errCacheMiss = errors.New("execcache: key not present in redis")

func (s *RedisBackedSource[T]) computeAndStore(exec *engine.Execution) engine.Promise[T] {
	return s.miss(exec).Wiretap(func(v T, err error) {
		if err != nil {
			return
		}
		raw, encErr := s.codec.Encode(v)
		if encErr != nil {
			return
		}
		s.client.Set(context.Background(), s.key, raw, s.ttl)
	})
}
