package skiplist

import "fmt"

// scheduleUnlink hands the physical unlink of an already logically-deleted
// node to the injected orchestrator, keeping the remover's own critical
// section short. §4.5.
func (l *List[K, P]) scheduleUnlink(target *node[K, P], topLevel int) {
	l.metrics.UnlinkScheduled()
	l.orch.Run(func() {
		defer func() {
			if r := recover(); r != nil {
				l.reportOrchestratorFailure(fmt.Errorf("%w: %v", ErrOrchestratorFailed, r))
			}
		}()
		l.unlink(target, topLevel)
	})
}

// unlink physically removes target from every level it occupies, top level
// down to level 0, preserving the subset-property invariant after each
// single-level step. Scheduling the same node's unlink twice is a no-op
// (idempotence, §4.5): the unlinked flag short-circuits re-entry, and even
// without that guard each level's relink only fires after re-confirming
// target is still the predecessor's immediate successor there.
func (l *List[K, P]) unlink(target *node[K, P], topLevel int) {
	if target.unlinked.Load() {
		return
	}
	for lvl := topLevel; lvl >= 0; lvl-- {
		for {
			pred, found := l.locatePredecessorOf(target, lvl)
			if !found {
				// Already unlinked at this level by a racing duplicate job.
				break
			}
			pred.mu.Lock()
			if pred.loadNext(lvl) == target {
				pred.storeNext(lvl, target.loadNext(lvl))
				pred.mu.Unlock()
				break
			}
			pred.mu.Unlock()
			// A concurrent insert changed pred's chain between locate and
			// lock; re-locate and try again.
		}
	}
	target.unlinked.Store(true)
	l.metrics.UnlinkCompleted()
}

// locatePredecessorOf walks level from head looking specifically for target
// by pointer identity, skipping over any other node whose priority compares
// less-than-or-equal to target's (ties among distinct keys are otherwise
// indistinguishable by priority alone). found is false if target is no
// longer reachable at level — already unlinked there.
func (l *List[K, P]) locatePredecessorOf(target *node[K, P], level int) (pred *node[K, P], found bool) {
	pred = l.head
	curr := pred.loadNext(level)
	for curr != nil && curr != target && l.cmp(curr.priority, target.priority) <= 0 {
		pred = curr
		curr = curr.loadNext(level)
	}
	return pred, curr == target
}
