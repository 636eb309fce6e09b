package skiplist

import (
	"cmp"
	"testing"
)

func newIntList(t *testing.T, opts ...Option[string, int]) *List[string, int] {
	t.Helper()
	l, err := New[string, int](cmp.Compare[int], opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l
}

func TestNew_InvalidArguments(t *testing.T) {
	if _, err := New[string, int](nil); err != ErrInvalidArgument {
		t.Fatalf("nil comparator: want ErrInvalidArgument, got %v", err)
	}
	if _, err := New[string, int](cmp.Compare[int], WithMaxLevels[string, int](0)); err != ErrInvalidArgument {
		t.Fatalf("maxLevels=0: want ErrInvalidArgument, got %v", err)
	}
	if _, err := New[string, int](cmp.Compare[int], WithPromotionProbability[string, int](1.5)); err != ErrInvalidArgument {
		t.Fatalf("p=1.5: want ErrInvalidArgument, got %v", err)
	}
	if _, err := New[string, int](cmp.Compare[int], WithMaxSize[string, int](0)); err != ErrInvalidArgument {
		t.Fatalf("maxSize=0: want ErrInvalidArgument, got %v", err)
	}
}

// Round-trip: TryAdd -> Contains is true; TryRemove -> Contains is false;
// TryAdd twice -> second returns false and count is unchanged. §8 property 5.
func TestRoundTrip(t *testing.T) {
	l := newIntList(t)

	if !l.TryAdd("a", 1) {
		t.Fatal("first TryAdd must succeed")
	}
	if !l.Contains("a") {
		t.Fatal("Contains must be true after TryAdd")
	}
	if l.TryAdd("a", 2) {
		t.Fatal("duplicate TryAdd must return false")
	}
	if got := l.GetCount(); got != 1 {
		t.Fatalf("duplicate TryAdd must not change count, got %d", got)
	}
	if p, ok := l.TryGetValue("a"); !ok || p != 1 {
		t.Fatalf("priority must be unchanged by rejected duplicate, got %d ok=%v", p, ok)
	}

	if !l.TryRemove("a") {
		t.Fatal("TryRemove must succeed")
	}
	if l.Contains("a") {
		t.Fatal("Contains must be false after TryRemove")
	}
	if l.TryRemove("a") {
		t.Fatal("second TryRemove must return false")
	}
}

// Insert [(a,3),(b,1),(c,2)] then drain via TryRemoveMin -> yields b, c, a.
func TestTryRemoveMin_Drain(t *testing.T) {
	l := newIntList(t)
	l.TryAdd("a", 3)
	l.TryAdd("b", 1)
	l.TryAdd("c", 2)

	want := []string{"b", "c", "a"}
	for _, w := range want {
		k, ok := l.TryRemoveMin()
		if !ok || k != w {
			t.Fatalf("TryRemoveMin: want %q, got %q ok=%v", w, k, ok)
		}
	}
	if _, ok := l.TryRemoveMin(); ok {
		t.Fatal("TryRemoveMin on empty list must return ok=false")
	}
}

// With maxSize=2, insert [(a,5),(b,1),(c,3)] -> final contents by priority
// are {b:1, c:3}; a was evicted.
func TestCapacityEviction(t *testing.T) {
	l := newIntList(t, WithMaxSize[string, int](2))

	l.TryAdd("a", 5)
	l.TryAdd("b", 1)
	l.TryAdd("c", 3)

	if l.Contains("a") {
		t.Fatal("a should have been evicted as the minimum after overflow")
	}
	if !l.Contains("b") || !l.Contains("c") {
		t.Fatal("b and c should remain")
	}
	if got := l.GetCount(); got != 2 {
		t.Fatalf("count want 2, got %d", got)
	}
}

func TestOrdering_AfterMixedOps(t *testing.T) {
	l := newIntList(t)
	for i, p := range []int{5, 3, 8, 1, 9, 2, 7} {
		l.TryAdd(string(rune('a'+i)), p)
	}
	l.TryRemove("b") // priority 3
	l.TryRemoveMin() // removes priority 1 ("d")

	var prev int
	first := true
	l.Iterate(func(_ string, p int) bool {
		if !first && p < prev {
			t.Fatalf("ordering violated: %d appeared after %d", p, prev)
		}
		prev, first = p, false
		return true
	})

	if errs := l.checkInvariants(); len(errs) != 0 {
		t.Fatalf("invariant violations: %v", errs)
	}
}

func TestUpdate_MissingKey(t *testing.T) {
	l := newIntList(t)
	if err := l.Update("missing", 1); err != ErrNotFoundOrDeleted {
		t.Fatalf("want ErrNotFoundOrDeleted, got %v", err)
	}
}

func TestUpdate_ChangesOrdering(t *testing.T) {
	l := newIntList(t)
	l.TryAdd("a", 10)
	l.TryAdd("b", 20)

	if err := l.Update("a", 30); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if p, ok := l.TryGetValue("a"); !ok || p != 30 {
		t.Fatalf("want priority 30, got %d ok=%v", p, ok)
	}

	k, ok := l.TryRemoveMin()
	if !ok || k != "b" {
		t.Fatalf("after update, min should be b, got %q ok=%v", k, ok)
	}
}

func TestUpdateFunc(t *testing.T) {
	l := newIntList(t)
	l.TryAdd("a", 10)

	err := l.UpdateFunc("a", func(_ string, old int) int { return old + 5 })
	if err != nil {
		t.Fatalf("UpdateFunc: %v", err)
	}
	if p, ok := l.TryGetValue("a"); !ok || p != 15 {
		t.Fatalf("want priority 15, got %d ok=%v", p, ok)
	}
}

func TestToArray_AscendingByPriority(t *testing.T) {
	l := newIntList(t)
	pairs := map[string]int{"a": 5, "b": 1, "c": 3, "d": 4, "e": 2}
	for k, p := range pairs {
		l.TryAdd(k, p)
	}

	arr := l.ToArray()
	if len(arr) != len(pairs) {
		t.Fatalf("want %d entries, got %d", len(pairs), len(arr))
	}
	for i := 1; i < len(arr); i++ {
		if arr[i-1].Priority > arr[i].Priority {
			t.Fatalf("ToArray not ascending at index %d: %+v", i, arr)
		}
	}
}

func TestHealth_StartsNil(t *testing.T) {
	l := newIntList(t)
	if err := l.Health(); err != nil {
		t.Fatalf("fresh list should report healthy, got %v", err)
	}
}
