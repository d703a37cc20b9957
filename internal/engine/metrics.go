package engine

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metrics tracks operational counters across the pipeline.
var metrics struct {
	Batches             atomic.Int64
	PageFetches         atomic.Int64
	FetchErrors         atomic.Int64
	ChannelExpansions   atomic.Int64
	TranscriptAPICalls  atomic.Int64
	TranscriptAPIHits   atomic.Int64
	TranscriptHTMLCalls atomic.Int64
	TranscriptHTMLHits  atomic.Int64
}

func IncrBatches()             { metrics.Batches.Add(1) }
func IncrPageFetches()         { metrics.PageFetches.Add(1) }
func IncrFetchErrors()         { metrics.FetchErrors.Add(1) }
func IncrChannelExpansions()   { metrics.ChannelExpansions.Add(1) }
func IncrTranscriptAPICalls()  { metrics.TranscriptAPICalls.Add(1) }
func IncrTranscriptAPIHits()   { metrics.TranscriptAPIHits.Add(1) }
func IncrTranscriptHTMLCalls() { metrics.TranscriptHTMLCalls.Add(1) }
func IncrTranscriptHTMLHits()  { metrics.TranscriptHTMLHits.Add(1) }

// GetMetrics returns a snapshot of all counters including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := CacheStats()
	return map[string]int64{
		"batches":               metrics.Batches.Load(),
		"page_fetches":          metrics.PageFetches.Load(),
		"fetch_errors":          metrics.FetchErrors.Load(),
		"channel_expansions":    metrics.ChannelExpansions.Load(),
		"transcript_api_calls":  metrics.TranscriptAPICalls.Load(),
		"transcript_api_hits":   metrics.TranscriptAPIHits.Load(),
		"transcript_html_calls": metrics.TranscriptHTMLCalls.Load(),
		"transcript_html_hits":  metrics.TranscriptHTMLHits.Load(),
		"cache_hits":            hits,
		"cache_misses":          misses,
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"batches", "page_fetches", "fetch_errors", "channel_expansions",
		"transcript_api_calls", "transcript_api_hits",
		"transcript_html_calls", "transcript_html_hits",
		"cache_hits", "cache_misses",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}
