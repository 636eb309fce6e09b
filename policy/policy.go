// Package policy defines pluggable priority-generating strategies for
// icache.Cache. Unlike a classic intrusive-list eviction policy, a Strategy
// never manipulates cache storage directly — it only computes the int64
// priority that icache.Cache hands to the underlying skiplist.List, which
// owns ordering and eviction (via TryRemoveMin) on its own. This keeps
// policy implementations free of locking concerns beyond their own internal
// bookkeeping (e.g. 2Q's ghost queue).
//
// Lower priority values are evicted first, so a Strategy that wants to
// behave like LRU hands out strictly increasing values on every touch: the
// least recently touched key ends up with the smallest value and is the
// first candidate TryRemoveMin returns.
package policy

// Strategy computes the ordering priority for keys admitted to, read from,
// or updated in a cache. Implementations must be safe for concurrent use.
type Strategy[K comparable] interface {
	// OnAdd returns the priority for a newly admitted key.
	OnAdd(key K) int64
	// OnGet returns the refreshed priority for a key observed on a read.
	OnGet(key K) int64
	// OnUpdate returns the refreshed priority for a key whose value changed.
	OnUpdate(key K) int64
	// OnRemove notifies the strategy that key left the cache, whether by
	// explicit removal or eviction, so it can drop or repurpose any
	// internal state it keeps for key (e.g. a ghost-queue entry).
	OnRemove(key K)
}
