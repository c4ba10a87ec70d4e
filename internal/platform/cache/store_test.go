package cache

import (
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := t.Context()

	s.Set(ctx, "lines:nfl", []string{"a"})
	got, ok := s.Get(ctx, "lines:nfl")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got.([]string)) != 1 {
		t.Fatalf("unexpected cached value: %v", got)
	}
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(time.Nanosecond)
	ctx := t.Context()

	s.Set(ctx, "lines:nfl", "v")
	time.Sleep(time.Millisecond)
	if _, ok := s.Get(ctx, "lines:nfl"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := t.Context()

	s.Set(ctx, "lines:nfl", "a")
	s.Set(ctx, "lines:mlb", "b")
	s.Set(ctx, "stats:mlb", "c")

	s.DeletePrefix(ctx, "lines:")
	if _, ok := s.Get(ctx, "lines:nfl"); ok {
		t.Fatal("lines:nfl should be invalidated")
	}
	if _, ok := s.Get(ctx, "lines:mlb"); ok {
		t.Fatal("lines:mlb should be invalidated")
	}
	if _, ok := s.Get(ctx, "stats:mlb"); !ok {
		t.Fatal("stats:mlb should survive")
	}
}

func TestStore_NilAndEmptyKeySafe(t *testing.T) {
	var s *Store
	ctx := t.Context()
	s.Set(ctx, "k", "v")
	if _, ok := s.Get(ctx, "k"); ok {
		t.Fatal("nil store should never hit")
	}

	full := NewStore(time.Minute)
	full.Set(ctx, "", "v")
	if _, ok := full.Get(ctx, ""); ok {
		t.Fatal("empty key should never hit")
	}
}
