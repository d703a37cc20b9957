package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	if _, ok := CacheGetResult(ctx, "vid00000001"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	want := ExtractionResult{
		Title:      "Cached Video",
		Transcript: "cached text",
		UploadDate: "1 de jan. de 2024",
		SourceURL:  "https://youtu.be/vid00000001",
		Ordinal:    3,
	}
	CacheSetResult(ctx, "vid00000001", want)

	got, ok := CacheGetResult(ctx, "vid00000001")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCacheExpiry(t *testing.T) {
	InitCache("", 10*time.Millisecond, 100, time.Minute)
	ctx := context.Background()

	CacheSetResult(ctx, "expiringvid", ExtractionResult{Title: "t", Transcript: "x"})
	time.Sleep(30 * time.Millisecond)

	if _, ok := CacheGetResult(ctx, "expiringvid"); ok {
		t.Error("expected miss after TTL")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", time.Minute, 5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		CacheSetResult(ctx, fmt.Sprintf("evictvid%03d", i), ExtractionResult{Title: "t", Transcript: "x"})
	}

	count := 0
	resultCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 5 {
		t.Errorf("L1 holds %d entries, cap is 5", count)
	}
}

func TestInitCacheStopsPreviousCleanup(t *testing.T) {
	InitCache("", time.Minute, 100, time.Millisecond)
	prev := resultCache
	InitCache("", time.Minute, 100, time.Minute)

	select {
	case <-prev.stop:
	case <-time.After(time.Second):
		t.Error("previous cleanup goroutine never signalled to stop")
	}
}

func TestCacheDisabled(t *testing.T) {
	old := resultCache
	resultCache = nil
	defer func() { resultCache = old }()

	ctx := context.Background()
	CacheSetResult(ctx, "anyvid", ExtractionResult{Title: "t"})
	if _, ok := CacheGetResult(ctx, "anyvid"); ok {
		t.Error("nil cache must never hit")
	}
}

func TestCacheStatsCount(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	h0, m0 := CacheStats()
	CacheGetResult(ctx, "statsvid001") // miss
	CacheSetResult(ctx, "statsvid001", ExtractionResult{Title: "t", Transcript: "x"})
	CacheGetResult(ctx, "statsvid001") // hit

	h1, m1 := CacheStats()
	if h1-h0 != 1 {
		t.Errorf("hits delta = %d, want 1", h1-h0)
	}
	if m1-m0 != 1 {
		t.Errorf("misses delta = %d, want 1", m1-m0)
	}
}
