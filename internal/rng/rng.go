// Package rng provides a thread-safe geometric level generator for the skip
// list's probabilistic balancing (§4.8 of the design: the smallest L >= 0
// such that a Bernoulli(p) trial fails, capped at maxLevels-1).
package rng

import (
	"math/rand"
	"sync"
	"time"
)

// LevelGenerator draws skip-list insertion levels from a geometric
// distribution with parameter p. It is called once per TryAdd, not once per
// comparison, so guarding a single *rand.Rand with a mutex is an acceptable
// trade-off and avoids pulling in a lock-free PRNG dependency.
type LevelGenerator struct {
	mu   sync.Mutex
	r    *rand.Rand
	p    float64
	cap  int
}

// New returns a generator for promotion probability p, capping results at
// maxLevels-1.
func New(p float64, maxLevels int) *LevelGenerator {
	return &LevelGenerator{
		r:   rand.New(rand.NewSource(time.Now().UnixNano())),
		p:   p,
		cap: maxLevels - 1,
	}
}

// Level draws the next level: count consecutive Bernoulli(p) successes
// starting from 0, stop at the first failure, cap at g.cap.
func (g *LevelGenerator) Level() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	lvl := 0
	for lvl < g.cap && g.r.Float64() < g.p {
		lvl++
	}
	return lvl
}
