package cache

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "cache.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestSQLiteStoreRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = ok=%v err=%v, want absent without error", ok, err)
	}

	if err := s.Set(ctx, "customers:id:c1", []byte(`{"id":"c1"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entry, ok, err := s.Get(ctx, "customers:id:c1")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if string(entry.Value) != `{"id":"c1"}` {
		t.Errorf("Value = %s", entry.Value)
	}
	if entry.StoredAt.IsZero() {
		t.Error("StoredAt not set")
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_ = s.Set(ctx, "k", []byte("old"))
	if err := s.Set(ctx, "k", []byte("new")); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	entry, _, _ := s.Get(ctx, "k")
	if string(entry.Value) != "new" {
		t.Errorf("Value = %s, want new", entry.Value)
	}
}

func TestSQLiteStoreRemovePrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_ = s.Set(ctx, "bills:list", []byte("a"))
	_ = s.Set(ctx, "bills:list?searchText=Jo", []byte("b"))
	_ = s.Set(ctx, "bills:id:b1", []byte("c"))

	if err := s.RemovePrefix(ctx, "bills:list"); err != nil {
		t.Fatalf("RemovePrefix failed: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "bills:list?searchText=Jo"); ok {
		t.Error("list variant survived prefix removal")
	}
	if _, ok, _ := s.Get(ctx, "bills:id:b1"); !ok {
		t.Error("per-id key was removed by list prefix removal")
	}
}

func TestSQLiteStoreLikeWildcardsAreLiteral(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	// A "%" in a key must not widen the prefix match.
	_ = s.Set(ctx, "customers:list?searchText=Jo%20Ann", []byte("a"))
	_ = s.Set(ctx, "customers:list?searchText=Jim", []byte("b"))

	if err := s.RemovePrefix(ctx, "customers:list?searchText=Jo%"); err != nil {
		t.Fatalf("RemovePrefix failed: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "customers:list?searchText=Jo%20Ann"); ok {
		t.Error("matching key survived")
	}
	if _, ok, _ := s.Get(ctx, "customers:list?searchText=Jim"); !ok {
		t.Error("non-matching key was removed, wildcard not escaped")
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	_ = s.Set(ctx, "a", []byte("1"))
	_ = s.Set(ctx, "b", []byte("2"))

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("entry survived Clear")
	}
}
