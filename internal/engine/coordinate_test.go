package engine

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"
)

// Completion order is deliberately shuffled with random sleeps; the
// collected results must still come back complete and in ordinal order.
func TestCollectOrderedRestoresOrder(t *testing.T) {
	Init(Config{Concurrency: 4})

	const n = 25
	for run := 0; run < 5; run++ {
		results := collectOrdered(context.Background(), n, 4, func(i int) ExtractionResult {
			time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
			return ExtractionResult{Title: fmt.Sprintf("video %d", i), Ordinal: i}
		})
		if len(results) != n {
			t.Fatalf("run %d: got %d results, want %d", run, len(results), n)
		}
		for i, r := range results {
			if r.Ordinal != i {
				t.Fatalf("run %d: results[%d].Ordinal = %d", run, i, r.Ordinal)
			}
			if want := fmt.Sprintf("video %d", i); r.Title != want {
				t.Fatalf("run %d: results[%d].Title = %q, want %q", run, i, r.Title, want)
			}
		}
	}
}

func TestCollectOrderedPanicIsolation(t *testing.T) {
	Init(Config{Concurrency: 2})

	results := collectOrdered(context.Background(), 3, 2, func(i int) ExtractionResult {
		if i == 1 {
			panic("boom")
		}
		return ExtractionResult{Title: fmt.Sprintf("ok %d", i), Transcript: "text", Ordinal: i}
	})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[1].Title != TitlePlaceholder || results[1].Transcript != "" {
		t.Errorf("panicked ordinal = %+v, want placeholder", results[1])
	}
	for _, i := range []int{0, 2} {
		if results[i].Transcript != "text" {
			t.Errorf("sibling ordinal %d affected by panic: %+v", i, results[i])
		}
	}
}

func TestCollectOrderedConcurrencyFallback(t *testing.T) {
	Init(Config{}) // Init applies DefaultConcurrency

	results := collectOrdered(context.Background(), 4, 0, func(i int) ExtractionResult {
		return ExtractionResult{Ordinal: i}
	})
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
}

func TestExtractOneCacheHit(t *testing.T) {
	Init(Config{})
	InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	CacheSetResult(ctx, "cachedvid01", ExtractionResult{
		Title:      "Cached",
		Transcript: "cached text",
		SourceURL:  "https://youtu.be/cachedvid01",
		Ordinal:    0,
	})

	// A hit returns without any network call; ordinal and source URL
	// belong to the current batch, not the cached one.
	got := extractOne(ctx, WorkItem{
		Ordinal:   7,
		VideoID:   "cachedvid01",
		SourceURL: "https://www.youtube.com/watch?v=cachedvid01",
	})
	if got.Transcript != "cached text" || got.Title != "Cached" {
		t.Errorf("cached payload lost: %+v", got)
	}
	if got.Ordinal != 7 {
		t.Errorf("ordinal = %d, want 7", got.Ordinal)
	}
	if got.SourceURL != "https://www.youtube.com/watch?v=cachedvid01" {
		t.Errorf("source url = %q, want batch's own", got.SourceURL)
	}
}

func TestCollectOrderedEmpty(t *testing.T) {
	Init(Config{Concurrency: 2})

	results := collectOrdered(context.Background(), 0, 2, func(i int) ExtractionResult {
		t.Fatal("task must not run for an empty worklist")
		return ExtractionResult{}
	})
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
