package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestCache starts an in-memory Redis and returns a cache on it.
func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Minute), mr
}

func TestLoad_MissThenHit(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]int, error) {
		calls++
		return []int{1954, 1965}, nil
	}

	first, err := Load(ctx, c, "years", "civil-rights", load)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Load(ctx, c, "years", "civil-rights", load)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Errorf("expected loader called once, got %d", calls)
	}
	if len(first) != 2 || len(second) != 2 || second[1] != 1965 {
		t.Errorf("unexpected payloads: %v / %v", first, second)
	}
	if !mr.Exists(Key("years", "civil-rights")) {
		t.Error("expected key to be written")
	}
	if ttl := mr.TTL(Key("years", "civil-rights")); ttl != time.Minute {
		t.Errorf("expected 1m ttl, got %s", ttl)
	}
}

func TestLoad_ErrorNotCached(t *testing.T) {
	c, mr := newTestCache(t)

	_, err := Load(context.Background(), c, "themes", "x", func(context.Context) (map[string]string, error) {
		return nil, errors.New("db down")
	})
	if err == nil {
		t.Fatal("expected loader error")
	}
	if mr.Exists(Key("themes", "x")) {
		t.Error("expected failed load to stay uncached")
	}
}

func TestInvalidate_RemovesOnlyKind(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "groups", "a", []string{"x"})
	c.Set(ctx, "groups", "b", []string{"y"})
	c.Set(ctx, "years", "a", []int{1})

	c.Invalidate(ctx, "groups")

	if mr.Exists(Key("groups", "a")) || mr.Exists(Key("groups", "b")) {
		t.Error("expected group keys removed")
	}
	if !mr.Exists(Key("years", "a")) {
		t.Error("expected year key kept")
	}
}

func TestGet_RedisDownFallsThrough(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("starting miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	c := New(rdb, time.Minute)
	mr.Close()

	calls := 0
	v, err := Load(context.Background(), c, "years", "a", func(context.Context) ([]int, error) {
		calls++
		return []int{1}, nil
	})
	if err != nil {
		t.Fatalf("expected redis failure to be swallowed, got %v", err)
	}
	if calls != 1 || len(v) != 1 {
		t.Errorf("expected loader result, got %v after %d calls", v, calls)
	}
}

func TestNew_NilClientIsNoop(t *testing.T) {
	c := New(nil, time.Minute)
	calls := 0
	for i := 0; i < 2; i++ {
		if _, err := Load(context.Background(), c, "years", "a", func(context.Context) ([]int, error) {
			calls++
			return nil, nil
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("expected loader called every time, got %d", calls)
	}
}
