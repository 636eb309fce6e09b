package skiplist

import "errors"

var (
	// ErrInvalidArgument is returned by New when a constructor bound is out
	// of range or the comparator is nil.
	ErrInvalidArgument = errors.New("skiplist: invalid argument")

	// ErrNotFoundOrDeleted is returned by Update/UpdateFunc when the key is
	// absent or has been logically deleted.
	ErrNotFoundOrDeleted = errors.New("skiplist: key not found or deleted")

	// ErrContentionExhausted is reported through Health when a writer's
	// internal retry budget is exceeded; the writer itself returns false.
	// It indicates pathological contention, never a structural problem with
	// the list.
	ErrContentionExhausted = errors.New("skiplist: contention budget exhausted")

	// ErrOrchestratorFailed is surfaced through Health when a background
	// unlink job panics. The list remains logically consistent; only
	// physical unlinking of already logically-deleted nodes is delayed.
	ErrOrchestratorFailed = errors.New("skiplist: background unlink orchestrator failed")
)
