// Package textscan implements the last-resort extraction strategy:
// segmenting flattened page text into alternating turns when neither
// embedded JSON nor DOM structure yields a conversation.
package textscan

import (
	"strings"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/norm"
)

const (
	// minDocumentText is the least flattened text worth segmenting.
	minDocumentText = 100

	// longLineLen marks a line as content rather than a boundary.
	longLineLen = 50

	// flushLen is the accumulated length at which a short line closes
	// the current segment.
	flushLen = 100

	// minSegmentLen is the least text a segment must hold to become a
	// turn.
	minSegmentLen = 50
)

// FixedConfidence is the confidence assigned to every text-pattern
// result, marking it as best-effort output.
const FixedConfidence = 0.2

// Segment splits flattened page text into conversation-sized chunks.
// Long lines accumulate into the current segment; blank lines and
// short lines after enough accumulated text close it. Returns nil
// when the text is too short to segment.
func Segment(text string) []string {
	text = strings.TrimSpace(text)
	if len(text) < minDocumentText {
		return nil
	}

	var segments []string
	var cur []string
	curLen := 0

	flush := func() {
		if curLen > minSegmentLen {
			segments = append(segments, strings.Join(cur, "\n"))
		}
		cur = nil
		curLen = 0
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			flush()
		case len(line) > longLineLen:
			cur = append(cur, line)
			curLen += len(line)
		default:
			if curLen > flushLen {
				flush()
			}
			cur = append(cur, line)
			curLen += len(line)
		}
	}
	flush()

	return segments
}

var _ chatextract.Strategy = (*Strategy)(nil)

// Strategy extracts a best-effort conversation from flattened page
// text. It implements chatextract.Strategy.
type Strategy struct {
	// Source flattens HTML into text. Nil uses the built-in parse-tree
	// walker.
	Source chatextract.TextSource

	// MinLength drops segments with shorter content.
	MinLength int
}

func (s *Strategy) Name() string { return "text" }

func (s *Strategy) source() chatextract.TextSource {
	if s.Source != nil {
		return s.Source
	}
	return HTMLSource{}
}

// Confidence is fixed: text segmentation cannot verify that what it
// found is a conversation.
func (s *Strategy) Confidence(doc *chatextract.Document) float64 {
	return FixedConfidence
}

// Extract flattens the document and segments its text into turns with
// roles assigned strictly by parity. Produces no title.
func (s *Strategy) Extract(doc *chatextract.Document) (*chatextract.ExtractionResult, error) {
	text, err := s.source().Text(doc.HTML)
	if err != nil {
		return nil, chatextract.Errorf(chatextract.EEXTRACT, "failed to flatten page text: %v", err)
	}

	var msgs []chatextract.Message
	seq := 1
	for _, segment := range Segment(text) {
		content := norm.Text(segment)
		if content == "" || len(content) < s.MinLength || !norm.ValidContent(content) {
			continue
		}
		msgs = append(msgs, chatextract.Message{
			Role:     chatextract.AlternatingRole(seq),
			Content:  content,
			Sequence: seq,
		})
		seq++
	}

	if len(msgs) == 0 {
		return nil, chatextract.Errorf(chatextract.ENOTFOUND, "page text is too sparse to segment")
	}

	return &chatextract.ExtractionResult{
		Messages:   chatextract.Resequence(chatextract.Dedupe(msgs)),
		Method:     s.Name(),
		Confidence: FixedConfidence,
	}, nil
}
