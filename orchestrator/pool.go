package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Pool runs jobs with a bounded number executing at once. It is built on
// golang.org/x/sync/errgroup (to track in-flight jobs) and
// golang.org/x/sync/semaphore (to cap concurrency without a fixed-size
// worker-goroutine-per-slot design); job panics are recovered by the Pool
// itself and reported through its fail callback.
type Pool struct {
	sem  *semaphore.Weighted
	eg   *errgroup.Group
	ctx  context.Context
	fail func(error)
}

// NewPool returns a Pool that runs at most width jobs concurrently. fail, if
// non-nil, is invoked (from the job's goroutine) whenever a job panics.
func NewPool(width int, fail func(error)) *Pool {
	if width < 1 {
		width = 1
	}
	eg, ctx := errgroup.WithContext(context.Background())
	return &Pool{
		sem:  semaphore.NewWeighted(int64(width)),
		eg:   eg,
		ctx:  ctx,
		fail: fail,
	}
}

// Run hands job to a new goroutine and returns without waiting; that
// goroutine waits for a free slot before executing job. A job panic is
// converted into an error reported via fail rather than crashing the process.
func (p *Pool) Run(job func()) {
	p.eg.Go(func() error {
		if err := p.sem.Acquire(p.ctx, 1); err != nil {
			// Pool has been drained or its context cancelled; run the job
			// anyway so the unlink still happens rather than being dropped.
			return p.runGuarded(job)
		}
		defer p.sem.Release(1)
		return p.runGuarded(job)
	})
}

func (p *Pool) runGuarded(job func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if p.fail != nil {
				p.fail(panicError{r})
			}
		}
	}()
	job()
	return nil
}

// Wait blocks until every job submitted so far has completed. Intended for
// tests and graceful shutdown; List never calls it on its own.
func (p *Pool) Wait() error {
	return p.eg.Wait()
}

type panicError struct{ v any }

func (p panicError) Error() string {
	return fmt.Sprintf("orchestrator: job panicked: %v", p.v)
}
