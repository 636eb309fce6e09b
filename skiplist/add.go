package skiplist

import "runtime"

// TryAdd inserts key with the given priority. It returns false if key
// already identifies a live (non-deleted) node — duplicates are rejected,
// never overwritten; callers that want to change a key's priority use
// Update. §4.3.
func (l *List[K, P]) TryAdd(key K, priority P) bool {
	retries := 0
	for {
		if v, ok := l.keys.Load(key); ok {
			existing := v.(*node[K, P])
			if existing.isDeleted.Load() {
				// A remover is mid-flight for this key (isDeleted is set before
				// the map entry is cleared, §4.4 step 5). Wait it out.
				if retries++; retries > l.retryBudget {
					l.reportOrchestratorFailure(ErrContentionExhausted)
					return false
				}
				l.metrics.ContentionRetry()
				runtime.Gosched()
				continue
			}
			// Live duplicate: wait for it to finish publishing so that a
			// caller observing "false" can immediately trust Contains(key).
			for !existing.isInserted.Load() {
				if existing.isDeleted.Load() {
					break
				}
				runtime.Gosched()
			}
			if !existing.isDeleted.Load() {
				return false
			}
			continue
		}

		insertLevel := l.gen.Level() + 1
		res := l.weakSearch(priority)

		locked := make([]*node[K, P], 0, insertLevel)
		valid := true
		var prev *node[K, P]
		for lvl := 0; lvl < insertLevel; lvl++ {
			pred := res.preds[lvl]
			if pred != prev {
				pred.mu.Lock()
				locked = append(locked, pred)
				prev = pred
			}
			succ := res.succs[lvl]
			if pred.isDeleted.Load() || (succ != nil && succ.isDeleted.Load()) || pred.loadNext(lvl) != succ {
				valid = false
				break
			}
		}
		if !valid {
			unlockAll(locked)
			if retries++; retries > l.retryBudget {
				l.reportOrchestratorFailure(ErrContentionExhausted)
				return false
			}
			l.metrics.ContentionRetry()
			continue
		}

		newN := newNode(key, priority, insertLevel)
		for lvl := 0; lvl < insertLevel; lvl++ {
			newN.storeNext(lvl, res.succs[lvl])
		}

		if _, loaded := l.keys.LoadOrStore(key, newN); loaded {
			// Lost a race with a concurrent TryAdd for the same key that
			// reached the map first; retry from scratch.
			unlockAll(locked)
			continue
		}

		for lvl := 0; lvl < insertLevel; lvl++ {
			res.preds[lvl].storeNext(lvl, newN)
		}
		// Release fence: every prior write to newN.next[*] is visible to any
		// goroutine that subsequently observes isInserted == true.
		newN.isInserted.Store(true)
		unlockAll(locked)

		newCount := l.count.Add(1)
		l.metrics.Inserted()
		l.metrics.Count(int(newCount))
		if int(newCount) > l.maxSize {
			l.TryRemoveMin()
		}
		return true
	}
}

// unlockAll releases every distinct node lock acquired during a splice or
// unlink attempt. Order doesn't matter once validation has already failed or
// succeeded — §4.3 step 7.
func unlockAll[K comparable, P any](nodes []*node[K, P]) {
	for _, n := range nodes {
		n.mu.Unlock()
	}
}
