package icache

import (
	"cmp"
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivbrk/priocache/backend"
	"github.com/ivbrk/priocache/internal/singleflight"
	"github.com/ivbrk/priocache/policy/lru"
	"github.com/ivbrk/priocache/skiplist"
)

// cache is a key/value cache whose eviction order is owned entirely by a
// skiplist.List[K, int64]: the list holds only keys and priorities, never
// values, so New always wires it with WithMaxSize(math.MaxInt32) and lets
// enforceCapacity — not the list's own overflow eviction — decide when a
// key actually leaves, since only enforceCapacity can also remove the
// matching backend entry.
type cache[K comparable, V any] struct {
	list *skiplist.List[K, int64]
	opt  Options[K, V]

	// expiry tracks per-key absolute UnixNano deadlines (0 = no entry = no
	// TTL). It is kept outside backend.Provider so backend implementations
	// stay simple maps of K to the caller's own V, not a TTL-wrapped type.
	expiry sync.Map // K -> int64

	sf singleflight.Group[K, V]

	closed atomic.Bool
}

// New constructs a Cache with the provided Options.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.Capacity <= 0 {
		return nil, ErrInvalidOptions
	}
	if opt.Strategy == nil {
		opt.Strategy = lru.New[K]()
	}
	if opt.Backend == nil {
		opt.Backend = backend.NewMemory[K, V]()
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	list, err := skiplist.New[K, int64](cmp.Compare[int64], skiplist.WithMaxSize[K, int64](math.MaxInt32))
	if err != nil {
		return nil, err
	}

	return &cache[K, V]{
		list: list,
		opt:  opt,
	}, nil
}

func (c *cache[K, V]) Set(k K, v V) { c.set(k, v, c.opt.DefaultTTL) }

func (c *cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) { c.set(k, v, ttl) }

func (c *cache[K, V]) set(k K, v V, ttl time.Duration) {
	if c.closed.Load() {
		return
	}
	if err := c.opt.Backend.Store(context.Background(), k, v); err != nil {
		return
	}
	if d := c.deadline(ttl); d != 0 {
		c.expiry.Store(k, d)
	} else {
		c.expiry.Delete(k)
	}
	c.publish(k)
	c.enforceCapacity()
}

// publish refreshes k's priority in the skip list, inserting it if absent.
// It mirrors the skip list's own TryAdd retry loop: a lost race against a
// concurrent publish for the same key just means the key is now present, so
// the loop falls back to promoting it instead.
func (c *cache[K, V]) publish(k K) {
	if c.list.Contains(k) {
		if c.list.Update(k, c.opt.Strategy.OnUpdate(k)) == nil {
			return
		}
		// Lost the race against a concurrent TryRemoveMin/Remove for k
		// between Contains and Update; fall through to (re-)admission.
	}
	for {
		if c.list.TryAdd(k, c.opt.Strategy.OnAdd(k)) {
			return
		}
		if c.list.Update(k, c.opt.Strategy.OnUpdate(k)) == nil {
			return
		}
	}
}

func (c *cache[K, V]) Get(k K) (V, bool) {
	var zero V
	if c.closed.Load() {
		return zero, false
	}
	if !c.list.Contains(k) {
		c.opt.Metrics.Miss()
		return zero, false
	}
	if c.isExpired(k) {
		c.removeExpired(k)
		c.opt.Metrics.Miss()
		return zero, false
	}
	v, ok, err := c.opt.Backend.Load(context.Background(), k)
	if err != nil || !ok {
		c.opt.Metrics.Miss()
		return zero, false
	}
	// Best-effort promotion: ignore ErrNotFoundOrDeleted, which only means
	// k was concurrently evicted between the Contains check above and here.
	_ = c.list.Update(k, c.opt.Strategy.OnGet(k))
	c.opt.Metrics.Hit()
	return v, true
}

func (c *cache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	if !c.list.TryRemove(k) {
		return false
	}
	c.expiry.Delete(k)
	c.opt.Strategy.OnRemove(k)
	_ = c.opt.Backend.Delete(context.Background(), k)
	c.opt.Metrics.Size(c.list.GetCount())
	return true
}

func (c *cache[K, V]) Len() int { return c.list.GetCount() }

func (c *cache[K, V]) Close() error {
	c.closed.Store(true)
	return c.opt.Backend.Close()
}

func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	return c.sf.Do(ctx, k, func() (V, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

// enforceCapacity drains the skip list's minimum-priority entries until Len
// is back within Options.Capacity, evicting each one's backend entry too.
func (c *cache[K, V]) enforceCapacity() {
	for c.list.GetCount() > c.opt.Capacity {
		key, ok := c.list.TryRemoveMin()
		if !ok {
			return
		}
		c.evict(key, EvictCapacity)
	}
}

func (c *cache[K, V]) removeExpired(k K) {
	if c.list.TryRemove(k) {
		c.evict(k, EvictTTL)
	}
}

// evict removes key's backend entry and TTL bookkeeping, notifies the
// Strategy and OnEvict, and reports metrics. The skip list entry itself
// must already be gone by the time evict is called.
func (c *cache[K, V]) evict(key K, reason EvictReason) {
	ctx := context.Background()
	v, ok, _ := c.opt.Backend.Load(ctx, key)
	_ = c.opt.Backend.Delete(ctx, key)
	c.expiry.Delete(key)
	c.opt.Strategy.OnRemove(key)
	c.opt.Metrics.Evict(reason)
	c.opt.Metrics.Size(c.list.GetCount())
	if ok && c.opt.OnEvict != nil {
		c.opt.OnEvict(key, v, reason)
	}
}

func (c *cache[K, V]) isExpired(k K) bool {
	d, ok := c.expiry.Load(k)
	if !ok {
		return false
	}
	return c.now() > d.(int64)
}

func (c *cache[K, V]) now() int64 {
	if c.opt.Clock != nil {
		return c.opt.Clock.NowUnixNano()
	}
	return time.Now().UnixNano()
}

// deadline converts a relative TTL into an absolute UnixNano deadline. A
// non-positive ttl returns 0 (no expiration).
func (c *cache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return c.now() + int64(ttl)
}
