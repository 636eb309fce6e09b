package skiplist

// TryRemove logically deletes key, then schedules its physical unlink in the
// background. It returns false if the key is absent, not yet published, or
// already deleted. §4.4.
func (l *List[K, P]) TryRemove(key K) bool {
	v, ok := l.keys.Load(key)
	if !ok {
		return false
	}
	target := v.(*node[K, P])
	if !target.isInserted.Load() || target.isDeleted.Load() {
		return false
	}

	target.mu.Lock()
	if target.isDeleted.Load() || !target.isInserted.Load() {
		target.mu.Unlock()
		return false
	}
	target.isDeleted.Store(true)

	return l.finishRemoval(key, target, target.level()-1)
}

// TryRemoveMin removes the minimum-priority element, if any. Under a single
// goroutine, repeated calls yield keys in non-decreasing priority order
// (§8, property 6).
func (l *List[K, P]) TryRemoveMin() (key K, ok bool) {
	for {
		candidate := l.head.loadNext(0)
		if candidate == nil {
			var zero K
			return zero, false
		}

		candidate.mu.Lock()
		if candidate.isDeleted.Load() || !candidate.isInserted.Load() {
			candidate.mu.Unlock()
			continue
		}
		candidate.isDeleted.Store(true)
		k := candidate.key

		if !l.finishRemoval(k, candidate, candidate.level()-1) {
			var zero K
			return zero, false
		}
		l.metrics.EvictedMin()
		return k, true
	}
}

// finishRemoval performs the predecessor-relinking half of a removal:
// target.mu must already be held and target.isDeleted already true. It
// locates and locks target's predecessors bottom-up, validates, removes the
// key index entry, decrements count, releases every lock it holds
// (including target.mu), and then schedules the physical unlink, so an
// Inline orchestrator can take the predecessor locks itself.
func (l *List[K, P]) finishRemoval(key K, target *node[K, P], topLevel int) bool {
	retries := 0
	for {
		res := l.weakSearchFrom(target.priority, topLevel)
		// weakSearchFrom stops before the first node whose priority is not
		// below target's; step past equal-priority nodes ahead of target.
		for lvl := 0; lvl <= topLevel; lvl++ {
			pred := res.preds[lvl]
			for curr := pred.loadNext(lvl); curr != nil && curr != target && l.cmp(curr.priority, target.priority) == 0; curr = pred.loadNext(lvl) {
				pred = curr
			}
			res.preds[lvl] = pred
		}

		locked := make([]*node[K, P], 0, topLevel+1)
		valid := true
		var prev *node[K, P]
		for lvl := 0; lvl <= topLevel; lvl++ {
			pred := res.preds[lvl]
			if pred != prev {
				pred.mu.Lock()
				locked = append(locked, pred)
				prev = pred
			}
			if pred.isDeleted.Load() || pred.loadNext(lvl) != target {
				valid = false
				break
			}
		}
		if !valid {
			unlockAll(locked)
			if retries++; retries > l.retryBudget {
				target.mu.Unlock()
				l.reportOrchestratorFailure(ErrContentionExhausted)
				return false
			}
			l.metrics.ContentionRetry()
			continue
		}

		l.keys.Delete(key)
		l.count.Add(-1)
		unlockAll(locked)
		target.mu.Unlock()
		l.scheduleUnlink(target, topLevel)

		l.metrics.Removed()
		l.metrics.Count(l.GetCount())
		return true
	}
}
