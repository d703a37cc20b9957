package engine

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"log/slog"
	"strings"

	ytapi "github.com/kkdai/youtube/v2"
)

// Transcript extraction runs two ordered strategies, short-circuiting on
// the first success:
//  1. library API — transcript listing by video id, no page needed
//  2. watch page — captionTracks from ytInitialPlayerResponse → timedtext XML
// Both failing is a per-item soft failure, never an error to the caller.

// timedText models the caption payload's XML shape.
type timedText struct {
	Lines []timedLine `xml:"text"`
}

type timedLine struct {
	Start float64 `xml:"start,attr"`
	Text  string  `xml:",chardata"`
}

// ExtractTranscript runs the strategy chain for one video. page holds the
// already-fetched watch page bytes; nil skips the watch-page strategy.
func ExtractTranscript(ctx context.Context, videoID string, page []byte) string {
	text, err := transcriptViaAPI(ctx, videoID)
	if err == nil {
		IncrTranscriptAPIHits()
		return text
	}
	slog.Warn("transcript: API strategy failed, trying watch page",
		slog.String("id", videoID), slog.Any("err", err))

	if page == nil {
		return ""
	}
	text, err = transcriptViaPage(ctx, page)
	if err != nil {
		slog.Warn("transcript: watch page strategy failed",
			slog.String("id", videoID), slog.Any("err", err))
		return ""
	}
	IncrTranscriptHTMLHits()
	return text
}

// transcriptViaAPI asks the youtube library for the transcript listing.
// Library panics count as strategy failure, same as errors.
func transcriptViaAPI(ctx context.Context, videoID string) (text string, err error) {
	IncrTranscriptAPICalls()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transcript API panic: %v", r)
		}
	}()

	client := ytapi.Client{HTTPClient: cfg.HTTPClient}
	video, err := client.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("video lookup: %w", err)
	}
	transcript, err := client.GetTranscriptCtx(ctx, video, cfg.PreferredLang)
	if err != nil {
		return "", fmt.Errorf("transcript listing: %w", err)
	}

	var sb strings.Builder
	for _, seg := range transcript {
		appendSegment(&sb, seg.StartMs/1000, seg.Text)
	}
	if sb.Len() == 0 {
		return "", ErrTranscriptUnavailable
	}
	return sb.String(), nil
}

// transcriptViaPage reads captionTracks out of the fetched watch page and
// downloads the selected track's timedtext payload (a second network call).
func transcriptViaPage(ctx context.Context, page []byte) (string, error) {
	IncrTranscriptHTMLCalls()

	pr, err := extractPlayerResponse(page)
	if err != nil {
		return "", err
	}
	if pr.Captions == nil {
		return "", ErrNoCaptionTracks
	}
	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", ErrNoCaptionTracks
	}

	payload, err := FetchPage(ctx, pickTrack(tracks).BaseURL)
	if err != nil {
		return "", fmt.Errorf("caption payload: %w", err)
	}
	return renderTimedText(payload)
}

// pickTrack selects the first English track, else the first track in list
// order. The tie-break is stable and deterministic.
func pickTrack(tracks []CaptionTrack) CaptionTrack {
	for _, t := range tracks {
		if t.LanguageCode == "en" {
			return t
		}
	}
	return tracks[0]
}

// renderTimedText decodes a timedtext XML payload into transcript text.
func renderTimedText(payload []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(payload, &tt); err != nil {
		return "", &ParseError{What: "timedtext XML", Err: err}
	}
	var sb strings.Builder
	for _, line := range tt.Lines {
		appendSegment(&sb, int(line.Start), line.Text)
	}
	if sb.Len() == 0 {
		return "", ErrTranscriptUnavailable
	}
	return sb.String(), nil
}

// appendSegment adds one decoded caption segment to the builder: space
// separated by default, or one timestamped line per segment when the
// timestamp feature is on.
func appendSegment(sb *strings.Builder, startSec int, raw string) {
	text := CleanHTML(html.UnescapeString(raw))
	if text == "" {
		return
	}
	if cfg.WithTimestamps {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(FormatTimestamp(startSec))
		sb.WriteByte(' ')
	} else if sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	sb.WriteString(text)
}
