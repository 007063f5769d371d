package http

import (
	"context"

	"github.com/fwojciec/chatextract/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel fetches in a batch.
const DefaultConcurrency = 4

// Result pairs a URL with its fetched page or error.
type Result struct {
	URL  string
	HTML string
	Err  error
}

// FetchAll retrieves a batch of share URLs concurrently. Duplicate
// URLs are fetched once; per-URL failures are reported in the result
// rather than aborting the batch. Results preserve the order of the
// deduplicated input.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	seen := bloom.NewFilter(uint(len(urls))+1, 0.001)
	var deduped []string
	for _, u := range urls {
		if seen.Seen(u) {
			continue
		}
		seen.Add(u)
		deduped = append(deduped, u)
	}

	results := make([]Result, len(deduped))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, u := range deduped {
		g.Go(func() error {
			html, err := f.Fetch(ctx, u)
			results[i] = Result{URL: u, HTML: html, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
