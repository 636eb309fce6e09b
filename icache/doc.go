// Package icache provides a key/value cache whose eviction order is owned
// by a skiplist.List rather than an intrusive MRU/LRU list.
//
// Design
//
//   - Ordering: a single skiplist.List[K, int64] holds every resident key
//     with its current eviction priority. It never holds a value — Set and
//     Get route values through a separate backend.Provider — so eviction
//     decisions never need to inspect, lock, or copy V.
//
//   - Priority: a policy.Strategy[K] computes the int64 priority on every
//     admission, read, and update. policy/lru hands out a monotonic clock;
//     policy/twoq additionally resists scan pollution via a tiered A1in/Am
//     band plus a ghost queue. Lower priority is evicted first.
//
//   - Capacity: enforceCapacity drains skiplist.List.TryRemoveMin after
//     every Set until Len is back within Options.Capacity, deleting the
//     matching backend entry for each key it removes. The skip list's own
//     internal overflow eviction is disabled (WithMaxSize(math.MaxInt32))
//     because it has no way to report which key it dropped back to Cache.
//
//   - TTL: per-key absolute deadlines are tracked in a side index, checked
//     lazily on Get; an expired entry is evicted on the read that finds it.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     singleflight. If Loader is nil, GetOrLoad returns ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; plug a Prometheus adapter to export them.
//
// Basic usage
//
//	c, err := icache.New[string, []byte](icache.Options[string, []byte]{Capacity: 10_000})
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v
//	}
//	c.Remove("a")
//
// With an alternative strategy (2Q) and a Redis backend
//
//	c, err := icache.New[string, string](icache.Options[string, string]{
//	    Capacity: 50_000,
//	    Strategy: twoq.New[string](12_500),
//	    Backend:  backend.NewRedis[string, string](client),
//	})
package icache
