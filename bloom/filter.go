// Package bloom tracks already-fetched share URLs so batch
// extractions skip duplicates cheaply.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over share URLs. It answers "was this
// URL already handled" with a small, fixed memory footprint; false
// positives skip a URL that was never fetched, false negatives never
// happen.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as handled.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Seen returns true if the URL might already be handled.
func (f *Filter) Seen(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
