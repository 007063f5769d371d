// Package extract runs the extraction strategies against a document
// in a fixed order, selects the best result by confidence, and
// assembles the final conversation.
package extract

import (
	"time"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/goquery"
	"github.com/fwojciec/chatextract/jsonscan"
	"github.com/fwojciec/chatextract/textscan"
	"github.com/google/uuid"
)

// Confidence thresholds governing the strategy loop.
const (
	// skipAcceptedConfidence: once an accepted result scores above
	// this, low-yield strategies may be skipped.
	skipAcceptedConfidence = 0.7

	// skipPrecheckConfidence: a strategy is skipped only when its
	// pre-check score is below this. A performance shortcut, not a
	// correctness rule.
	skipPrecheckConfidence = 0.5

	// earlyExitConfidence stops the loop outright.
	earlyExitConfidence = 0.8
)

// Orchestrator runs an ordered set of strategies against one document
// at a time. It is stateless across calls; a fresh diagnostics report
// is built for every extraction, so distinct instances may run in
// parallel on different documents.
type Orchestrator struct {
	service    chatextract.Service
	strategies []chatextract.Strategy

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewOrchestrator creates an Orchestrator running the given strategies
// in order. The first strategy is always attempted.
func NewOrchestrator(service chatextract.Service, strategies ...chatextract.Strategy) *Orchestrator {
	return &Orchestrator{
		service:    service,
		strategies: strategies,
		Now:        time.Now,
	}
}

// DefaultStrategies returns the standard strategy order: embedded
// JSON first, DOM heuristics second, text segmentation last.
func DefaultStrategies(service chatextract.Service, minLength int) []chatextract.Strategy {
	return []chatextract.Strategy{
		&jsonscan.Strategy{Service: service, MinLength: minLength},
		&goquery.Strategy{Service: service, MinLength: minLength},
		&textscan.Strategy{MinLength: minLength},
	}
}

// Extract runs the strategies against the document and returns the
// best conversation found, together with the per-attempt diagnostics
// report. A strategy that fails, or panics, is recorded as a failed
// attempt and never aborts the remaining strategies. When every
// strategy fails, the report is returned alongside an EEXTRACT error
// so callers can render what was tried.
func (o *Orchestrator) Extract(doc *chatextract.Document) (*chatextract.Conversation, *chatextract.Report, error) {
	if err := doc.Validate(); err != nil {
		return nil, nil, err
	}

	report := &chatextract.Report{}
	var best *chatextract.ExtractionResult

	for i, strategy := range o.strategies {
		if i > 0 && best.Success() && best.Confidence > skipAcceptedConfidence &&
			o.confidence(strategy, doc) < skipPrecheckConfidence {
			continue
		}

		result, err := o.run(strategy, doc)
		attempt := chatextract.Attempt{Strategy: strategy.Name()}
		switch {
		case err != nil:
			attempt.Err = chatextract.ErrorMessage(err)
		case !result.Success():
			// no messages, nothing to record
		default:
			attempt.Success = true
			attempt.Messages = len(result.Messages)
			attempt.Confidence = result.Confidence
			if best == nil || result.Confidence > best.Confidence {
				best = result
			}
		}
		report.Attempts = append(report.Attempts, attempt)

		if best.Success() && best.Confidence > earlyExitConfidence {
			break
		}
	}

	if !best.Success() {
		return nil, report, chatextract.Errorf(chatextract.EEXTRACT, "no strategy could extract a conversation")
	}

	service := o.service
	if service == chatextract.ServiceUnknown {
		service = chatextract.DetectService(doc.URL)
	}

	now := time.Now
	if o.Now != nil {
		now = o.Now
	}

	return &chatextract.Conversation{
		ID:          uuid.New().String(),
		Service:     service,
		Title:       best.Title,
		URL:         doc.URL,
		Messages:    best.Messages,
		ExtractedAt: now().UTC(),
		Method:      best.Method,
		Confidence:  clip(best.Confidence),
		ContentHash: ContentHash(best.Messages),
	}, report, nil
}

// run executes one strategy with panic recovery, so a broken strategy
// degrades into a failed attempt.
func (o *Orchestrator) run(s chatextract.Strategy, doc *chatextract.Document) (result *chatextract.ExtractionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = chatextract.Errorf(chatextract.EINTERNAL, "strategy %s panicked: %v", s.Name(), r)
		}
	}()
	return s.Extract(doc)
}

// confidence runs a strategy's pre-check with panic recovery.
func (o *Orchestrator) confidence(s chatextract.Strategy, doc *chatextract.Document) (score float64) {
	defer func() {
		if r := recover(); r != nil {
			score = 0
		}
	}()
	return s.Confidence(doc)
}

func clip(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
