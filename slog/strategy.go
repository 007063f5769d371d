// Package slog provides logging decorators for chatextract interfaces
// using the standard library structured logger.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/chatextract"
)

// Ensure LoggingStrategy implements chatextract.Strategy.
var _ chatextract.Strategy = (*LoggingStrategy)(nil)

// LoggingStrategy wraps a Strategy with debug logging for extraction
// runs.
type LoggingStrategy struct {
	next   chatextract.Strategy
	logger *slog.Logger
}

// NewLoggingStrategy creates a new LoggingStrategy.
func NewLoggingStrategy(next chatextract.Strategy, logger *slog.Logger) *LoggingStrategy {
	return &LoggingStrategy{next: next, logger: logger}
}

// Name delegates to the wrapped strategy.
func (s *LoggingStrategy) Name() string {
	return s.next.Name()
}

// Confidence delegates to the wrapped strategy and logs the pre-check
// score.
func (s *LoggingStrategy) Confidence(doc *chatextract.Document) float64 {
	score := s.next.Confidence(doc)
	s.logger.Debug("strategy precheck",
		"strategy", s.next.Name(),
		"confidence", score,
	)
	return score
}

// Extract delegates to the wrapped strategy and logs the outcome.
func (s *LoggingStrategy) Extract(doc *chatextract.Document) (result *chatextract.ExtractionResult, err error) {
	defer func(begin time.Time) {
		messages := 0
		confidence := 0.0
		if result != nil {
			messages = len(result.Messages)
			confidence = result.Confidence
		}
		s.logger.Info("strategy extract",
			"strategy", s.next.Name(),
			"messages", messages,
			"confidence", confidence,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Extract(doc)
}
