package backend

import (
	"context"
	"testing"
)

func TestMemory_StoreLoadDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string, int]()

	if _, ok, err := m.Load(ctx, "a"); err != nil || ok {
		t.Fatalf("Load on empty provider: ok=%v err=%v", ok, err)
	}

	if err := m.Store(ctx, "a", 1); err != nil {
		t.Fatalf("Store: %v", err)
	}
	v, ok, err := m.Load(ctx, "a")
	if err != nil || !ok || v != 1 {
		t.Fatalf("Load after Store: v=%d ok=%v err=%v", v, ok, err)
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := m.Load(ctx, "a"); ok {
		t.Fatal("key must be absent after Delete")
	}

	if err := m.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete of absent key must not error, got %v", err)
	}
}

func TestMemory_ClosedReturnsErrClosed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[string, int]()
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, _, err := m.Load(ctx, "a"); err != ErrClosed {
		t.Fatalf("Load after Close: want ErrClosed, got %v", err)
	}
	if err := m.Store(ctx, "a", 1); err != ErrClosed {
		t.Fatalf("Store after Close: want ErrClosed, got %v", err)
	}
	if err := m.Delete(ctx, "a"); err != ErrClosed {
		t.Fatalf("Delete after Close: want ErrClosed, got %v", err)
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory[int, int]()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			m.Store(ctx, i, i)
		}
	}()
	for i := 0; i < 1000; i++ {
		m.Load(ctx, i)
	}
	<-done
}
