package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = ok=%v err=%v, want absent without error", ok, err)
	}

	if err := s.Set(ctx, "customers:list", []byte(`[{"id":"c1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, ok, err := s.Get(ctx, "customers:list")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if string(entry.Value) != `[{"id":"c1"}]` {
		t.Errorf("Value = %s", entry.Value)
	}
	if entry.StoredAt.IsZero() {
		t.Error("StoredAt not set")
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Set(ctx, "k", []byte("old"))
	_ = s.Set(ctx, "k", []byte("new"))

	entry, _, _ := s.Get(ctx, "k")
	if string(entry.Value) != "new" {
		t.Errorf("Value = %s, want new", entry.Value)
	}
}

func TestMemoryStoreRemovePrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	keys := []string{
		"bills:list",
		"bills:list?searchText=Jo",
		"bills:list?limit=10",
		"bills:id:b1",
		"customers:list",
	}
	for _, k := range keys {
		_ = s.Set(ctx, k, []byte("x"))
	}

	if err := s.RemovePrefix(ctx, "bills:list"); err != nil {
		t.Fatalf("RemovePrefix failed: %v", err)
	}

	for _, k := range []string{"bills:list", "bills:list?searchText=Jo", "bills:list?limit=10"} {
		if _, ok, _ := s.Get(ctx, k); ok {
			t.Errorf("key %q survived prefix removal", k)
		}
	}
	for _, k := range []string{"bills:id:b1", "customers:list"} {
		if _, ok, _ := s.Get(ctx, k); !ok {
			t.Errorf("unrelated key %q was removed", k)
		}
	}
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after Clear", s.Len())
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, key, []byte("v"))
				_, _, _ = s.Get(ctx, key)
				_ = s.Remove(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}
