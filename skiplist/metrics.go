package skiplist

// Metrics exposes structural observability hooks for a List. A NoopMetrics
// implementation is used by default; plug metrics/prom.SkiplistAdapter to
// export these to Prometheus.
type Metrics interface {
	Inserted()
	Removed()
	EvictedMin()
	UnlinkScheduled()
	UnlinkCompleted()
	ContentionRetry()
	OrchestratorFailed()
	Count(n int)
}

// NoopMetrics discards every signal. Safe for concurrent use.
type NoopMetrics struct{}

func (NoopMetrics) Inserted()           {}
func (NoopMetrics) Removed()            {}
func (NoopMetrics) EvictedMin()         {}
func (NoopMetrics) UnlinkScheduled()    {}
func (NoopMetrics) UnlinkCompleted()    {}
func (NoopMetrics) ContentionRetry()    {}
func (NoopMetrics) OrchestratorFailed() {}
func (NoopMetrics) Count(int)           {}

var _ Metrics = NoopMetrics{}
