package jsonscan

import (
	"strings"

	"github.com/fwojciec/chatextract"
)

// scriptKeywords mark a script as conversation-bearing for scoring.
var scriptKeywords = []string{"conversation", "messages", "__INITIAL_STATE__", "__next_f"}

// Strategy extracts conversations from JSON embedded in page scripts.
// It implements chatextract.Strategy.
type Strategy struct {
	// Service biases role parsing toward service-specific aliases.
	// ServiceUnknown restricts parsing to the generic vocabulary.
	Service chatextract.Service

	// MinLength drops entries with shorter content. Zero keeps
	// everything non-empty.
	MinLength int
}

var _ chatextract.Strategy = (*Strategy)(nil)

func (s *Strategy) Name() string { return "json" }

// Confidence estimates how likely embedded JSON is to yield the
// conversation, from the ratio of keyword-bearing scripts.
func (s *Strategy) Confidence(doc *chatextract.Document) float64 {
	return Score(ScriptTexts(doc.HTML))
}

// Score is the pure confidence estimate over script fragments: 0.1
// with no scripts at all, otherwise the keyword-script ratio doubled
// and capped at 0.9.
func Score(scripts []string) float64 {
	if len(scripts) == 0 {
		return 0.1
	}

	keyworded := 0
	for _, script := range scripts {
		if containsAny(script, scriptKeywords) {
			keyworded++
		}
	}

	score := float64(keyworded) / float64(len(scripts)) * 2
	if score > 0.9 {
		score = 0.9
	}
	return score
}

// Extract scans the document's scripts for JSON candidates and pools
// the located message arrays. Returns ENOTFOUND when no candidate
// yields messages.
func (s *Strategy) Extract(doc *chatextract.Document) (*chatextract.ExtractionResult, error) {
	scripts := ScriptTexts(doc.HTML)
	candidates := Scan(scripts)
	if len(candidates) == 0 {
		return nil, chatextract.Errorf(chatextract.ENOTFOUND, "no conversation data in page scripts")
	}

	messages := Messages(candidates, s.Service, s.MinLength)
	if len(messages) == 0 {
		return nil, chatextract.Errorf(chatextract.ENOTFOUND, "script candidates contained no usable messages")
	}

	title := TitleFromCandidates(candidates)
	if title == "" {
		if t := strings.TrimSpace(PageTitle(doc.HTML)); chatextract.MeaningfulTitle(t) {
			title = t
		}
	}

	return &chatextract.ExtractionResult{
		Messages:   messages,
		Title:      title,
		Method:     s.Name(),
		Confidence: Score(scripts),
	}, nil
}
