package skiplist

// searchResult is the output of a lock-free locator: per-level predecessor
// and successor, and the highest level at which an exact match was observed
// as the immediate successor of the recorded predecessor.
type searchResult[K comparable, P any] struct {
	preds      []*node[K, P]
	succs      []*node[K, P]
	levelFound int
}

// weakSearch locates predecessors and successors at every level for
// priority p. It acquires no locks: it may observe a successor whose
// isInserted is still false or whose isDeleted is true, and leaves
// interpreting that state to the caller. §4.2.
func (l *List[K, P]) weakSearch(p P) searchResult[K, P] {
	res := searchResult[K, P]{
		preds:      make([]*node[K, P], l.maxLevels),
		succs:      make([]*node[K, P], l.maxLevels),
		levelFound: -1,
	}

	pred := l.head
	for level := l.maxLevels - 1; level >= 0; level-- {
		curr := pred.loadNext(level)
		for curr != nil && l.cmp(curr.priority, p) < 0 {
			pred = curr
			curr = pred.loadNext(level)
		}
		if res.levelFound == -1 && curr != nil && l.cmp(curr.priority, p) == 0 {
			res.levelFound = level
		}
		res.preds[level] = pred
		res.succs[level] = curr
	}
	return res
}

// weakSearchFrom is weakSearch but only builds predecessor/successor arrays
// for levels [0, topLevel]; used when re-locating a node whose own height is
// already known (finishRemoval, for TryRemove and TryRemoveMin).
func (l *List[K, P]) weakSearchFrom(p P, topLevel int) searchResult[K, P] {
	res := searchResult[K, P]{
		preds:      make([]*node[K, P], topLevel+1),
		succs:      make([]*node[K, P], topLevel+1),
		levelFound: -1,
	}

	pred := l.head
	for level := l.maxLevels - 1; level >= 0; level-- {
		curr := pred.loadNext(level)
		for curr != nil && l.cmp(curr.priority, p) < 0 {
			pred = curr
			curr = pred.loadNext(level)
		}
		if level <= topLevel {
			res.preds[level] = pred
			res.succs[level] = curr
		}
	}
	return res
}
