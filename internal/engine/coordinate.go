package engine

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ExtractionResult is one finished unit of work. It is created exactly
// once per worklist item, on success or soft failure, and never mutated
// after it is handed to the aggregator.
type ExtractionResult struct {
	Title      string `json:"title"`
	Transcript string `json:"transcript"` // empty = soft failure
	UploadDate string `json:"upload_date,omitempty"`
	SourceURL  string `json:"source_url"`
	Ordinal    int    `json:"ordinal"`
}

// RunBatch extracts every worklist item with bounded concurrency and
// returns results sorted back into worklist order. Per-item failures
// degrade to placeholder results; they never abort sibling items.
func RunBatch(ctx context.Context, items []WorkItem, concurrency int) []ExtractionResult {
	IncrBatches()

	results := collectOrdered(ctx, len(items), concurrency, func(i int) ExtractionResult {
		return extractOne(ctx, items[i])
	})
	for i := range results {
		if results[i].SourceURL == "" {
			results[i].SourceURL = items[results[i].Ordinal].SourceURL
		}
	}
	return results
}

// collectOrdered fans n tasks out over a pool of at most concurrency
// goroutines, collects their results in completion order, and sorts them
// by ordinal. A panicking task yields a placeholder result for its
// ordinal only.
func collectOrdered(ctx context.Context, n, concurrency int, task func(int) ExtractionResult) []ExtractionResult {
	if concurrency <= 0 {
		concurrency = cfg.Concurrency
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	out := make(chan ExtractionResult, n)
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("extract: recovered panic",
						slog.Int("ordinal", i), slog.Any("panic", r))
					out <- ExtractionResult{Title: TitlePlaceholder, Ordinal: i}
				}
			}()
			out <- task(i)
			return nil
		})
	}
	_ = g.Wait()
	close(out)

	results := make([]ExtractionResult, 0, n)
	for r := range out {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Ordinal < results[j].Ordinal })
	return results
}

// extractOne runs metadata + transcript extraction for a single video.
func extractOne(ctx context.Context, item WorkItem) ExtractionResult {
	res := ExtractionResult{
		Title:     TitlePlaceholder,
		SourceURL: item.SourceURL,
		Ordinal:   item.Ordinal,
	}

	if cached, ok := CacheGetResult(ctx, item.VideoID); ok {
		cached.Ordinal = item.Ordinal
		cached.SourceURL = item.SourceURL
		return cached
	}

	page, err := FetchPage(ctx, WatchURL(item.VideoID))
	if err != nil {
		slog.Warn("extract: watch page fetch failed",
			slog.String("id", item.VideoID), slog.Any("err", err))
		page = nil
	}
	if page != nil {
		md := ExtractMetadata(page)
		res.Title = md.Title
		res.UploadDate = md.UploadDate
	}

	res.Transcript = ExtractTranscript(ctx, item.VideoID, page)
	if res.Transcript == "" {
		slog.Warn("extract: no transcript", slog.String("url", item.SourceURL))
	} else {
		slog.Info("extract: done",
			slog.String("id", item.VideoID), slog.String("title", LogTitle(res.Title)))
		CacheSetResult(ctx, item.VideoID, res)
	}
	return res
}
