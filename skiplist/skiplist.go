// Package skiplist implements a concurrent priority queue as a lock-based
// probabilistic skip list with logical deletion and deferred physical
// unlinking.
//
// Writers splice nodes in under per-node locks, taken bottom-up over the
// predecessor chain and released after the target; readers (Contains,
// TryGetValue, Iterate) never take a lock and tolerate concurrent mutation.
// Logical deletion (marking isDeleted) is synchronous with TryRemove*;
// physical unlinking is handed off to an injected orchestrator.Orchestrator
// so that a writer's own critical section stays short.
package skiplist

import (
	"sync"
	"sync/atomic"

	"github.com/ivbrk/priocache/internal/rng"
	"github.com/ivbrk/priocache/orchestrator"
)

const (
	// DefaultMaxSize mirrors the distilled spec's constructor default.
	DefaultMaxSize = 10_000
	// DefaultMaxLevels mirrors the distilled spec's constructor default.
	DefaultMaxLevels = 32
	// DefaultPromotionProbability mirrors the distilled spec's constructor default.
	DefaultPromotionProbability = 0.5

	// defaultContentionBudget bounds internal validation retries before a
	// writer gives up with ErrContentionExhausted. It is large enough that
	// realistic contention never hits it; it exists purely as a backstop
	// against a caller-supplied comparator that isn't a consistent total
	// order (which would otherwise retry forever).
	defaultContentionBudget = 1_000_000
)

// Comparator orders two priorities. It must return a negative number if a <
// b, zero if a == b, and a positive number if a > b — the same convention as
// cmp.Compare. It must be pure and safe for concurrent use.
type Comparator[P any] func(a, b P) int

// Entry is a key/priority pair returned by ToArray.
type Entry[K comparable, P any] struct {
	Key      K
	Priority P
}

// List is a concurrent priority skip list keyed by K and ordered by P.
type List[K comparable, P any] struct {
	head *node[K, P]
	cmp  Comparator[P]

	maxLevels  int
	promoteP   float64
	maxSize    int
	retryBudget int

	count atomic.Int64
	gen   *rng.LevelGenerator

	keys sync.Map // K -> *node[K, P]

	orch orchestrator.Orchestrator

	metrics Metrics

	healthMu sync.Mutex
	health   error
}

// Option configures a List constructed by New.
type Option[K comparable, P any] func(*config[K, P])

type config[K comparable, P any] struct {
	maxSize      int
	maxLevels    int
	promoteP     float64
	retryBudget  int
	orchestrator orchestrator.Orchestrator
	metrics      Metrics
}

// WithMaxSize sets the soft capacity bound; on overflow the minimum-priority
// element is evicted. Without this option the bound is DefaultMaxSize; n
// must be positive.
func WithMaxSize[K comparable, P any](n int) Option[K, P] {
	return func(c *config[K, P]) { c.maxSize = n }
}

// WithMaxLevels bounds the number of forward-pointer levels a node may be
// spliced at.
func WithMaxLevels[K comparable, P any](n int) Option[K, P] {
	return func(c *config[K, P]) { c.maxLevels = n }
}

// WithPromotionProbability sets the Bernoulli parameter used by the level
// generator (§4.8); must be in [0, 1].
func WithPromotionProbability[K comparable, P any](p float64) Option[K, P] {
	return func(c *config[K, P]) { c.promoteP = p }
}

// WithOrchestrator injects the background task runner used to physically
// unlink logically-deleted nodes. Defaults to orchestrator.Inline(), which
// runs unlink jobs synchronously — convenient for deterministic tests, not
// recommended in production because it folds unlink work back onto the
// writer's call stack.
func WithOrchestrator[K comparable, P any](o orchestrator.Orchestrator) Option[K, P] {
	return func(c *config[K, P]) { c.orchestrator = o }
}

// WithContentionBudget overrides the internal validation-retry budget before
// a writer gives up with ErrContentionExhausted.
func WithContentionBudget[K comparable, P any](n int) Option[K, P] {
	return func(c *config[K, P]) { c.retryBudget = n }
}

// WithMetrics wires an observability sink for structural events (inserts,
// removals, evictions, unlink jobs, contention retries).
func WithMetrics[K comparable, P any](m Metrics) Option[K, P] {
	return func(c *config[K, P]) { c.metrics = m }
}

// New constructs a List ordered by cmp. It fails with ErrInvalidArgument if
// maxLevels <= 0, promotionProbability is outside [0,1], maxSize <= 0, or
// cmp is nil.
func New[K comparable, P any](cmp Comparator[P], opts ...Option[K, P]) (*List[K, P], error) {
	if cmp == nil {
		return nil, ErrInvalidArgument
	}
	cfg := config[K, P]{
		maxSize:     DefaultMaxSize,
		maxLevels:   DefaultMaxLevels,
		promoteP:    DefaultPromotionProbability,
		retryBudget: defaultContentionBudget,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.maxLevels <= 0 {
		return nil, ErrInvalidArgument
	}
	if cfg.promoteP < 0 || cfg.promoteP > 1 {
		return nil, ErrInvalidArgument
	}
	if cfg.maxSize <= 0 {
		return nil, ErrInvalidArgument
	}
	if cfg.orchestrator == nil {
		cfg.orchestrator = orchestrator.Inline()
	}
	if cfg.metrics == nil {
		cfg.metrics = NoopMetrics{}
	}

	l := &List[K, P]{
		head:        newHead[K, P](cfg.maxLevels),
		cmp:         cmp,
		maxLevels:   cfg.maxLevels,
		promoteP:    cfg.promoteP,
		maxSize:     cfg.maxSize,
		retryBudget: cfg.retryBudget,
		gen:         rng.New(cfg.promoteP, cfg.maxLevels),
		orch:        cfg.orchestrator,
		metrics:     cfg.metrics,
	}
	return l, nil
}

// GetCount returns the atomic element count. It may be loosely consistent
// with concurrent mutation (§8, property 4 only holds at quiescence).
func (l *List[K, P]) GetCount() int {
	return int(l.count.Load())
}

// Health reports the last failure observed, or nil if none has occurred:
// ErrOrchestratorFailed when a background unlink job panicked, or
// ErrContentionExhausted when a writer gave up after its retry budget. An
// unlink failure does not imply any corruption of list state: it only
// delays physical reclamation of an already logically-deleted node.
func (l *List[K, P]) Health() error {
	l.healthMu.Lock()
	defer l.healthMu.Unlock()
	return l.health
}

func (l *List[K, P]) reportOrchestratorFailure(err error) {
	l.healthMu.Lock()
	l.health = err
	l.healthMu.Unlock()
	l.metrics.OrchestratorFailed()
}
