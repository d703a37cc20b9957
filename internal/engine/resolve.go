package engine

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// VideoReference is a classified input: a direct video id or a channel link.
// Exactly one of ID and ChannelURL is set.
type VideoReference struct {
	ID         string // 11-char video id
	ChannelURL string // channel reference requiring expansion
	SourceURL  string // original input string
}

// IsChannel reports whether the reference needs expansion before extraction.
func (r VideoReference) IsChannel() bool { return r.ChannelURL != "" }

// WorkItem is one fully-resolved unit of the immutable batch worklist.
// Ordinal is its position in the worklist and restores deterministic order
// after unordered concurrent completion.
type WorkItem struct {
	Ordinal   int
	VideoID   string
	SourceURL string
}

var supportedURLRE = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?(?:youtube\.com|youtu\.be)/`)

// channelMarkers classify a URL as a channel reference.
var channelMarkers = []string{"/channel/", "/@", "/c/", "/user/"}

// Ordered id extraction patterns; the first match wins and no further
// patterns are tried. The third is anchored: a bare 11-char token.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`(?:embed/|v/|youtu\.be/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`^([0-9A-Za-z_-]{11})$`),
}

// IsSupportedURL reports whether raw looks like a YouTube URL or a bare
// video id. Anything else is dropped silently from the worklist.
func IsSupportedURL(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return supportedURLRE.MatchString(trimmed) || idPatterns[2].MatchString(trimmed)
}

// Resolve classifies a raw input string. Pure: no network access.
func Resolve(raw string) (VideoReference, error) {
	trimmed := strings.TrimSpace(raw)
	for _, marker := range channelMarkers {
		if strings.Contains(trimmed, marker) {
			return VideoReference{ChannelURL: trimmed, SourceURL: raw}, nil
		}
	}
	for _, re := range idPatterns {
		if m := re.FindStringSubmatch(trimmed); len(m) == 2 {
			return VideoReference{ID: m[1], SourceURL: raw}, nil
		}
	}
	return VideoReference{}, &ResolutionError{Raw: raw, Reason: "no-id"}
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// BuildWorklist resolves raw inputs into the flat ordered worklist.
// Channel references are expanded here, strictly before any extraction is
// dispatched. Unresolvable inputs are dropped; duplicates are preserved.
func BuildWorklist(ctx context.Context, raws []string) []WorkItem {
	var items []WorkItem
	for _, raw := range raws {
		if !IsSupportedURL(raw) {
			slog.Debug("worklist: unsupported input dropped", slog.String("input", raw))
			continue
		}
		ref, err := Resolve(raw)
		if err != nil {
			slog.Debug("worklist: unresolvable input dropped", slog.Any("err", err))
			continue
		}
		if !ref.IsChannel() {
			items = append(items, WorkItem{VideoID: ref.ID, SourceURL: ref.SourceURL})
			continue
		}
		for _, videoURL := range ExpandChannel(ctx, ref.ChannelURL) {
			vref, err := Resolve(videoURL)
			if err != nil || vref.IsChannel() {
				slog.Debug("worklist: channel entry dropped", slog.String("url", videoURL))
				continue
			}
			items = append(items, WorkItem{VideoID: vref.ID, SourceURL: videoURL})
		}
	}
	for i := range items {
		items[i].Ordinal = i
	}
	return items
}
