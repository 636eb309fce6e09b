package skiplist

// Update replaces key's priority with priority. It fails with
// ErrNotFoundOrDeleted if key is absent or deleted.
//
// This is deliberately implemented as logical-delete + insert rather than an
// in-place rewrite of the node's priority field (§4.6): an in-place rewrite
// of the ordering key can violate the ordering invariant for any reader
// concurrently positioned around the node, since the node would still be
// linked at its old chain position under its new priority. The node's
// priority field is in fact never mutated after construction in this
// implementation — "mutable via Update" means the key's associated priority
// can change across calls, not that a single node's stored field is
// rewritten in place.
func (l *List[K, P]) Update(key K, priority P) error {
	return l.updateWith(key, func(_ K, _ P) P { return priority })
}

// UpdateFunc replaces key's priority with fn(key, old). It fails with
// ErrNotFoundOrDeleted if key is absent or deleted.
func (l *List[K, P]) UpdateFunc(key K, fn func(key K, old P) P) error {
	return l.updateWith(key, fn)
}

func (l *List[K, P]) updateWith(key K, fn func(K, P) P) error {
	// One retry covers the pathological case of a concurrent re-add of the
	// same key landing between our TryRemove and TryAdd; a second failure is
	// surfaced rather than looped on forever.
	for attempt := 0; attempt < 2; attempt++ {
		old, ok := l.TryGetValue(key)
		if !ok {
			return ErrNotFoundOrDeleted
		}
		next := fn(key, old)

		if !l.TryRemove(key) {
			continue
		}
		if l.TryAdd(key, next) {
			return nil
		}
	}
	return ErrNotFoundOrDeleted
}
