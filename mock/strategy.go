// Package mock provides mock implementations of chatextract
// interfaces for testing.
package mock

import "github.com/fwojciec/chatextract"

var _ chatextract.Strategy = (*Strategy)(nil)

// Strategy is a mock implementation of chatextract.Strategy.
type Strategy struct {
	NameFn       func() string
	ConfidenceFn func(doc *chatextract.Document) float64
	ExtractFn    func(doc *chatextract.Document) (*chatextract.ExtractionResult, error)
}

func (s *Strategy) Name() string {
	return s.NameFn()
}

func (s *Strategy) Confidence(doc *chatextract.Document) float64 {
	return s.ConfidenceFn(doc)
}

func (s *Strategy) Extract(doc *chatextract.Document) (*chatextract.ExtractionResult, error) {
	return s.ExtractFn(doc)
}
