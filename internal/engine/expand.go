package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// Channel expansion delegates to yt-dlp in flat extraction mode: list the
// channel's entries, download nothing. Failures are non-fatal to the
// batch — the expander returns an empty list and other inputs proceed.

type channelDump struct {
	Entries []channelEntry `json:"entries"`
}

type channelEntry struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ExpandChannel returns the channel's video URLs in listing order.
func ExpandChannel(ctx context.Context, channelURL string) []string {
	IncrChannelExpansions()

	dl := ytdlp.New().SkipDownload().FlatPlaylist().DumpSingleJSON().NoWarnings()
	res, err := dl.Run(ctx, channelURL)
	if err != nil {
		slog.Warn("expand: yt-dlp failed",
			slog.String("channel", channelURL), slog.Any("err", err))
		return nil
	}

	urls := parseChannelDump(res.Stdout)
	slog.Info("expand: channel listed",
		slog.String("channel", channelURL), slog.Int("videos", len(urls)))
	return urls
}

// parseChannelDump decodes yt-dlp's single-JSON dump into normalized
// watch URLs, preserving listing order.
func parseChannelDump(stdout string) []string {
	var dump channelDump
	if err := json.Unmarshal([]byte(stdout), &dump); err != nil {
		slog.Warn("expand: bad yt-dlp output", slog.Any("err", err))
		return nil
	}
	urls := make([]string, 0, len(dump.Entries))
	for _, e := range dump.Entries {
		switch {
		case e.URL != "":
			urls = append(urls, normalizeEntryURL(e.URL))
		case e.ID != "":
			urls = append(urls, WatchURL(e.ID))
		}
	}
	return urls
}

// normalizeEntryURL maps a flat-extraction entry to a canonical watch URL
// when it is not already a fully-qualified platform URL.
func normalizeEntryURL(u string) string {
	if strings.Contains(u, "youtube.com/") || strings.Contains(u, "youtu.be/") {
		return u
	}
	if i := strings.LastIndex(u, "v="); i >= 0 {
		u = u[i+2:]
	}
	return WatchURL(u)
}
