package backend

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ivbrk/priocache/bufpool"
)

// Redis is a Provider backed by a Redis instance via go-redis/v9. Values are
// gob-encoded; keys are rendered to strings via KeyFunc (fmt.Sprint by
// default) and namespaced with Prefix to allow multiple caches to share one
// Redis keyspace safely.
type Redis[K comparable, V any] struct {
	client  redis.UniversalClient
	prefix  string
	keyFunc func(K) string
	ttl     time.Duration
	closed  atomic.Bool
}

// RedisOption configures a Redis provider.
type RedisOption[K comparable, V any] func(*Redis[K, V])

// WithPrefix namespaces every key written by this provider.
func WithPrefix[K comparable, V any](prefix string) RedisOption[K, V] {
	return func(r *Redis[K, V]) { r.prefix = prefix }
}

// WithKeyFunc overrides the default fmt.Sprint key-rendering function.
func WithKeyFunc[K comparable, V any](fn func(K) string) RedisOption[K, V] {
	return func(r *Redis[K, V]) { r.keyFunc = fn }
}

// WithTTL sets a TTL applied to every Store. Zero (the default) means keys
// never expire on their own; eviction is left entirely to the skiplist.
func WithTTL[K comparable, V any](ttl time.Duration) RedisOption[K, V] {
	return func(r *Redis[K, V]) { r.ttl = ttl }
}

// NewRedis wraps an existing go-redis client. The caller owns the client's
// lifecycle except that Close on the returned Provider also closes it.
func NewRedis[K comparable, V any](client redis.UniversalClient, opts ...RedisOption[K, V]) *Redis[K, V] {
	r := &Redis[K, V]{
		client:  client,
		keyFunc: func(k K) string { return fmt.Sprint(k) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis[K, V]) fullKey(key K) string {
	return r.prefix + r.keyFunc(key)
}

func (r *Redis[K, V]) Load(ctx context.Context, key K) (V, bool, error) {
	var zero V
	if r.closed.Load() {
		return zero, false, ErrClosed
	}

	raw, err := r.client.Get(ctx, r.fullKey(key)).Bytes()
	if err == redis.Nil {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("backend: redis get: %w", err)
	}

	v, err := decode[V](raw)
	if err != nil {
		return zero, false, fmt.Errorf("backend: decode: %w", err)
	}
	return v, true, nil
}

func (r *Redis[K, V]) Store(ctx context.Context, key K, value V) error {
	if r.closed.Load() {
		return ErrClosed
	}

	raw, err := encode(value)
	if err != nil {
		return fmt.Errorf("backend: encode: %w", err)
	}
	if err := r.client.Set(ctx, r.fullKey(key), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("backend: redis set: %w", err)
	}
	return nil
}

func (r *Redis[K, V]) Delete(ctx context.Context, key K) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if err := r.client.Del(ctx, r.fullKey(key)).Err(); err != nil {
		return fmt.Errorf("backend: redis del: %w", err)
	}
	return nil
}

func (r *Redis[K, V]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	return r.client.Close()
}

func encode[V any](v V) ([]byte, error) {
	buf := bufpool.Get()
	defer bufpool.Put(buf)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return nil, err
	}
	// Copy out: buf is about to be returned to the pool.
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func decode[V any](raw []byte) (V, error) {
	var v V
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}
