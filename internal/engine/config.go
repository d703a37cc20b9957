package engine

import (
	"net/http"
	"time"
)

// DefaultConcurrency bounds simultaneous in-flight extractions per batch.
const DefaultConcurrency = 10

// Config holds all engine configuration, injected from main.
type Config struct {
	Concurrency          int           // max parallel extractions per batch
	FetchTimeout         time.Duration // per network call
	PreferredLang        string        // transcript language hint for the API strategy
	WithUploadDate       bool          // extract the upload date line
	WithTimestamps       bool          // prefix transcript lines with MM:SS marks
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	HTTPClient           *http.Client
}

var cfg Config

// Cfg exposes the engine configuration for the server package.
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
func Init(c Config) {
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 10 * time.Second
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	cfg = c
	Cfg = &cfg
}
