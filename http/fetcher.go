// Package http provides an HTTP-based implementation of
// chatextract.Fetcher for retrieving share pages. Share pages are
// served fully rendered or with embedded state, so no JavaScript
// execution is needed.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/norm"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// browserHeaders mimic a desktop browser. Several services refuse
// requests that arrive with sparse headers.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Sec-Fetch-Dest":  "document",
	"Sec-Fetch-Mode":  "navigate",
	"Sec-Fetch-Site":  "none",
}

// minimalHeaders are the fallback for services that reject
// browser-imitating clients but serve plain ones.
var minimalHeaders = map[string]string{
	"User-Agent": "curl/8.5.0",
	"Accept":     "*/*",
}

// Ensure Fetcher implements chatextract.Fetcher at compile time.
var _ chatextract.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves share-page HTML over HTTP with browser-like
// headers, retrying transient failures with backoff and switching to
// minimal headers when a service answers 403.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	delays  []time.Duration
	limiter *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRetryDelays sets the backoff delays between retry attempts.
// Useful for testing without waiting for real delays.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// WithRateLimit enables per-domain rate limiting at the given
// requests per second.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.limiter = NewDomainLimiter(rps)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL, retrying
// transient failures. A 403 on the browser-header request is retried
// once with minimal headers before counting as a failure.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", chatextract.Errorf(chatextract.EINVALID, "invalid URL: %v", err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	maxAttempts := len(f.delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, status, err := f.fetchOnce(ctx, rawURL, browserHeaders)
		if status == http.StatusForbidden {
			html, _, err = f.fetchOnce(ctx, rawURL, minimalHeaders)
		}
		if err == nil {
			return html, nil
		}
		lastErr = err

		// A missing page will not appear on retry.
		if chatextract.ErrorCode(err) == chatextract.ENOTFOUND {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	return "", lastErr
}

// fetchOnce performs a single request with the given headers.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string, headers map[string]string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", 0, chatextract.Errorf(chatextract.EINVALID, "invalid request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return "", resp.StatusCode, chatextract.Errorf(chatextract.ENOTFOUND, "page not found: %s", rawURL)
	default:
		return "", resp.StatusCode, chatextract.Errorf(chatextract.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	// Share pages are not always served as UTF-8.
	return norm.Bytes(body), resp.StatusCode, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op
// since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
