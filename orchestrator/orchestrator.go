// Package orchestrator provides the background task runner injected into a
// skiplist.List to perform deferred physical unlinking off the writer's
// critical path. The interface is a single method so any executor — inline,
// one-goroutine-per-job, or a bounded pool — can satisfy it.
package orchestrator

// Orchestrator executes jobs, possibly asynchronously. Run must not block
// the caller longer than it takes to hand the job off; it is free to run the
// job on the calling goroutine (Inline), a dedicated goroutine (Goroutine),
// or a bounded worker pool (Pool).
type Orchestrator interface {
	Run(job func())
}

// inline runs every job synchronously on the calling goroutine. It is useful
// for deterministic tests that want physical unlinking to have happened by
// the time TryRemove returns, and is the default when none is supplied.
type inline struct{}

// Inline returns an Orchestrator that executes jobs synchronously.
func Inline() Orchestrator { return inline{} }

func (inline) Run(job func()) { job() }

// goroutinePerJob spawns one unbounded goroutine per job. Simple and
// correct, but offers no backpressure under a burst of deletions.
type goroutinePerJob struct{}

// Goroutine returns an Orchestrator that runs each job on its own goroutine.
func Goroutine() Orchestrator { return goroutinePerJob{} }

func (goroutinePerJob) Run(job func()) { go job() }
