package engine

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
)

// maxPageBytes caps watch page and caption payload reads.
const maxPageBytes = 6 * 1024 * 1024

// FetchPage performs a single GET with a browser user-agent and the
// configured per-call timeout. No retries: a failed fetch downgrades the
// item to best-effort defaults instead of being retried or propagated.
func FetchPage(ctx context.Context, rawURL string) ([]byte, error) {
	IncrPageFetches()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		IncrFetchErrors()
		return nil, &FetchError{Kind: FetchNetwork, URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", UserAgentChrome)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := cfg.HTTPClient.Do(req)
	if err != nil {
		IncrFetchErrors()
		return nil, &FetchError{Kind: fetchKindFor(err), URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		IncrFetchErrors()
		return nil, &FetchError{Kind: FetchHTTPStatus, URL: rawURL, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		IncrFetchErrors()
		return nil, &FetchError{Kind: FetchNetwork, URL: rawURL, Err: err}
	}
	return body, nil
}

func fetchKindFor(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return FetchTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}
	return FetchNetwork
}
