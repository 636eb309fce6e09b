package skiplist

import (
	"sync"
	"sync/atomic"
)

// node is a single element of the skip list: a key, its ordering priority,
// and a per-level forward-pointer array sized exactly to the level chosen
// for it at construction time.
//
// isInserted and isDeleted are atomic.Bool rather than plain bools: the Go
// memory model gives a Store/Load pair on the same atomic value a
// happens-before edge, which is what lets a lock-free reader that observes
// isInserted == true also observe every next[*] write that preceded it.
type node[K comparable, P any] struct {
	key      K
	priority P

	next []atomic.Pointer[node[K, P]]

	mu sync.Mutex

	isInserted atomic.Bool
	isDeleted  atomic.Bool
	unlinked   atomic.Bool
}

// level is the number of forward pointers this node was spliced at
// (index range [0, level)).
func (n *node[K, P]) level() int { return len(n.next) }

func newNode[K comparable, P any](key K, priority P, level int) *node[K, P] {
	return &node[K, P]{
		key:      key,
		priority: priority,
		next:     make([]atomic.Pointer[node[K, P]], level),
	}
}

// newHead builds the head sentinel at the list's maximum height. The head
// never participates in priority comparisons: WeakSearch always starts past
// it, so its own priority field is never read.
func newHead[K comparable, P any](maxLevels int) *node[K, P] {
	h := &node[K, P]{next: make([]atomic.Pointer[node[K, P]], maxLevels)}
	h.isInserted.Store(true)
	return h
}

func (n *node[K, P]) loadNext(level int) *node[K, P] {
	return n.next[level].Load()
}

func (n *node[K, P]) storeNext(level int, v *node[K, P]) {
	n.next[level].Store(v)
}

// published reports whether the node is visible to readers and not yet
// logically removed.
func (n *node[K, P]) published() bool {
	return n.isInserted.Load() && !n.isDeleted.Load()
}
