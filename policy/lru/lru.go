// Package lru implements the LRU priority strategy.
package lru

import (
	"sync/atomic"

	"github.com/ivbrk/priocache/policy"
)

var _ policy.Strategy[int] = (*Strategy[int])(nil)

// Strategy hands out a strictly increasing logical timestamp on every touch,
// so the skiplist's minimum-priority entry is always the least recently
// used key.
type Strategy[K comparable] struct {
	clock atomic.Int64
}

// New returns an LRU policy.Strategy.
func New[K comparable]() *Strategy[K] { return &Strategy[K]{} }

func (s *Strategy[K]) OnAdd(_ K) int64    { return s.clock.Add(1) }
func (s *Strategy[K]) OnGet(_ K) int64    { return s.clock.Add(1) }
func (s *Strategy[K]) OnUpdate(_ K) int64 { return s.clock.Add(1) }
func (s *Strategy[K]) OnRemove(_ K)       {}
