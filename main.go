// transcritor — YouTube transcript batch downloader.
//
// Accepts video or channel URLs over an HTML form, expands channels into
// their member videos, extracts each video's transcript and metadata
// concurrently with bounded parallelism, and serves the assembled
// plain-text document as a download.
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"

	"transcritor/internal/engine"
	"transcritor/internal/server"
)

var (
	version  = "dev"
	httpPort = env.Str("PORT", "8080")
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	initEngine()

	slog.Info("starting transcritor",
		slog.String("version", version),
		slog.String("port", httpPort),
	)

	srv := &http.Server{
		Addr:        ":" + httpPort,
		Handler:     server.New().Handler(),
		ReadTimeout: 30 * time.Second,
		// Large channel expansions keep the response open for a while;
		// there is no partial delivery, the batch ships in one piece.
		WriteTimeout: 600 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

func initEngine() {
	c := engine.Config{
		Concurrency:          env.Int("CONCURRENCY", 10),
		FetchTimeout:         env.Duration("FETCH_TIMEOUT", 10*time.Second),
		PreferredLang:        env.Str("TRANSCRIPT_LANG", ""),
		WithUploadDate:       env.Int("WITH_UPLOAD_DATE", 1) == 1,
		WithTimestamps:       env.Int("WITH_TIMESTAMPS", 0) == 1,
		CacheMaxEntries:      env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval: env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}
	engine.Init(c)

	cacheTTL := env.Duration("CACHE_TTL", 15*time.Minute)
	engine.InitCache(env.Str("REDIS_URL", ""), cacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
}
