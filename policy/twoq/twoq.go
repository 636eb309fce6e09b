// Package twoq implements the 2Q priority strategy, which resists scan
// pollution better than plain LRU by giving first-time admissions a
// separate FIFO queue (A1in) before they earn a place among the
// recency-ordered entries (Am).
package twoq

import (
	"container/list"
	"sync"

	"github.com/ivbrk/priocache/policy"
)

// tierBit separates the two priority bands: every A1in priority sorts below
// every Am priority, so the skiplist's TryRemoveMin always drains A1in
// first — FIFO order within A1in falls out for free because the clock only
// ever increases there, never gets refreshed by a Get.
const tierBit = int64(1) << 62

var _ policy.Strategy[int] = (*Strategy[int])(nil)

// Strategy implements the policy.Strategy contract for 2Q. capGhost bounds
// the ghost queue (A1out) that remembers recently evicted A1in keys so they
// can bypass A1in on re-admission.
//
// Unlike the teacher's shard-local 2Q, this Strategy does not enforce its
// own A1in capacity — that responsibility now belongs entirely to
// icache.Cache's single capacity check against the skiplist, with the tier
// bit guaranteeing A1in entries are always evicted first.
type Strategy[K comparable] struct {
	mu       sync.Mutex
	clock    int64
	capGhost int

	inSet map[K]struct{}

	ghostList *list.List
	ghostIdx  map[K]*list.Element
}

// New returns a 2Q policy.Strategy. capGhost bounds the ghost queue size;
// values below 1 are clamped to 1.
func New[K comparable](capGhost int) *Strategy[K] {
	if capGhost < 1 {
		capGhost = 1
	}
	return &Strategy[K]{
		capGhost:  capGhost,
		inSet:     make(map[K]struct{}),
		ghostList: list.New(),
		ghostIdx:  make(map[K]*list.Element),
	}
}

// OnAdd admits key into A1in unless it carries a ghost entry, in which case
// it gets a second chance directly into Am.
func (s *Strategy[K]) OnAdd(key K) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ge, ok := s.ghostIdx[key]; ok {
		s.ghostList.Remove(ge)
		delete(s.ghostIdx, key)
		s.clock++
		return tierBit + s.clock
	}

	s.inSet[key] = struct{}{}
	s.clock++
	return s.clock
}

// OnGet promotes key out of A1in into Am on its first read after admission;
// subsequent reads simply refresh its Am recency.
func (s *Strategy[K]) OnGet(key K) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inSet, key)
	s.clock++
	return tierBit + s.clock
}

// OnUpdate follows OnGet semantics: a write counts as a use.
func (s *Strategy[K]) OnUpdate(key K) int64 { return s.OnGet(key) }

// OnRemove records a ghost entry for keys evicted while still in A1in.
// Removals from Am never populate the ghost queue.
func (s *Strategy[K]) OnRemove(key K) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.inSet[key]; !ok {
		return
	}
	delete(s.inSet, key)

	if old, ok := s.ghostIdx[key]; ok {
		s.ghostList.Remove(old)
	}
	s.ghostIdx[key] = s.ghostList.PushFront(key)

	for s.ghostList.Len() > s.capGhost {
		tail := s.ghostList.Back()
		if tail == nil {
			break
		}
		delete(s.ghostIdx, tail.Value.(K))
		s.ghostList.Remove(tail)
	}
}
