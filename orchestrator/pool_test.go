package orchestrator

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

func TestPool_RunsAllJobs(t *testing.T) {
	p := NewPool(4, nil)

	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	var count int64
	for i := 0; i < n; i++ {
		p.Run(func() {
			atomic.AddInt64(&count, 1)
			wg.Done()
		})
	}
	wg.Wait()
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if got := atomic.LoadInt64(&count); got != n {
		t.Fatalf("want %d jobs run, got %d", n, got)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const width = 3
	p := NewPool(width, nil)

	var inFlight int64
	var maxSeen int64
	var mu sync.Mutex
	const n = 50

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		p.Run(func() {
			defer wg.Done()
			<-start
			cur := atomic.AddInt64(&inFlight, 1)
			mu.Lock()
			if cur > maxSeen {
				maxSeen = cur
			}
			mu.Unlock()
			atomic.AddInt64(&inFlight, -1)
		})
	}
	close(start)
	wg.Wait()

	if maxSeen > int64(width) {
		t.Fatalf("observed %d concurrent jobs, pool width is %d", maxSeen, width)
	}
}

func TestPool_PanicIsReportedNotFatal(t *testing.T) {
	var reported error
	var mu sync.Mutex
	p := NewPool(2, func(err error) {
		mu.Lock()
		reported = err
		mu.Unlock()
	})

	done := make(chan struct{})
	p.Run(func() {
		defer close(done)
		panic("boom")
	})
	<-done
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait must not surface the recovered panic as an error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if reported == nil {
		t.Fatal("fail callback must be invoked with the panic converted to an error")
	}
	if !strings.Contains(reported.Error(), "boom") {
		t.Fatalf("reported error must mention the panic value, got %q", reported.Error())
	}
}

func TestPool_NonPositiveWidthClampedToOne(t *testing.T) {
	p := NewPool(0, nil)
	done := make(chan struct{})
	p.Run(func() { close(done) })
	<-done
}
