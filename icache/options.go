package icache

import (
	"context"
	"time"

	"github.com/ivbrk/priocache/backend"
	"github.com/ivbrk/priocache/policy"
)

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures a Cache. Zero values are safe; New applies defaults:
//   - nil Strategy => policy/lru.New[K]()
//   - nil Backend  => backend.NewMemory[K, V]()
//   - nil Metrics  => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the entry count limit enforced after every Set.
	Capacity int

	// Strategy computes eviction priorities for the underlying skip list;
	// nil defaults to plain LRU.
	Strategy policy.Strategy[K]

	// Backend stores the actual key/value pairs. The skip list itself only
	// ever holds a key and its eviction priority (never V), so eviction can
	// decide a key's fate without touching — or even knowing the shape of —
	// the stored value. nil defaults to an in-process backend.Memory.
	Backend backend.Provider[K, V]

	// DefaultTTL applies to Set when SetWithTTL is not used (0 = no TTL).
	DefaultTTL time.Duration

	// Loader fetches a value on a GetOrLoad miss.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called after an entry leaves the cache for any reason.
	// Keep it lightweight; it runs synchronously on the evicting goroutine.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals.
	Metrics Metrics

	// Clock overrides the time source (tests). Nil => time.Now().
	Clock Clock
}
