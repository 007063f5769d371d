package extract_test

import (
	"testing"
	"time"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/extract"
	"github.com/fwojciec/chatextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_Extract(t *testing.T) {
	t.Parallel()

	t.Run("embedded state page", func(t *testing.T) {
		t.Parallel()
		page := `<html><body><script>window.__INITIAL_STATE__ = {"conversation":{"messages":[{"role":"user","content":"Hi"},{"role":"assistant","content":"Hello!"}]}};</script></body></html>`
		doc := &chatextract.Document{URL: "https://chatgpt.com/share/abc12345", HTML: page}

		now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
		o := extract.NewOrchestrator(chatextract.ServiceUnknown, extract.DefaultStrategies(chatextract.ServiceUnknown, 1)...)
		o.Now = func() time.Time { return now }

		conv, report, err := o.Extract(doc)
		require.NoError(t, err)
		require.NotNil(t, conv)

		require.Len(t, conv.Messages, 2)
		assert.Equal(t, []int{1, 2}, []int{conv.Messages[0].Sequence, conv.Messages[1].Sequence})
		assert.Equal(t, chatextract.RoleUser, conv.Messages[0].Role)
		assert.Equal(t, chatextract.RoleAssistant, conv.Messages[1].Role)
		assert.Equal(t, "json", conv.Method)
		assert.Greater(t, conv.Confidence, 0.0)
		assert.Equal(t, chatextract.ServiceChatGPT, conv.Service)
		assert.Equal(t, now, conv.ExtractedAt)
		assert.NotEmpty(t, conv.ID)
		assert.NotEmpty(t, conv.ContentHash)

		require.NotNil(t, report)
		assert.Equal(t, 1, report.Successes())
	})

	t.Run("empty page yields diagnostics for every strategy", func(t *testing.T) {
		t.Parallel()
		doc := &chatextract.Document{HTML: `<html><body></body></html>`}

		o := extract.NewOrchestrator(chatextract.ServiceUnknown, extract.DefaultStrategies(chatextract.ServiceUnknown, 1)...)
		conv, report, err := o.Extract(doc)
		require.Error(t, err)
		assert.Equal(t, chatextract.EEXTRACT, chatextract.ErrorCode(err))
		assert.Nil(t, conv)

		require.NotNil(t, report)
		assert.Len(t, report.Attempts, 3)
		assert.Equal(t, 0, report.Successes())
		assert.Equal(t, []string{"json", "dom", "text"}, attemptNames(report))
	})

	t.Run("no document content", func(t *testing.T) {
		t.Parallel()
		o := extract.NewOrchestrator(chatextract.ServiceUnknown, extract.DefaultStrategies(chatextract.ServiceUnknown, 1)...)
		_, _, err := o.Extract(&chatextract.Document{HTML: "   "})
		require.Error(t, err)
		assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
	})

	t.Run("panicking strategy becomes a failed attempt", func(t *testing.T) {
		t.Parallel()
		panicking := &mock.Strategy{
			NameFn:       func() string { return "broken" },
			ConfidenceFn: func(*chatextract.Document) float64 { return 0.9 },
			ExtractFn: func(*chatextract.Document) (*chatextract.ExtractionResult, error) {
				panic("unexpected node type")
			},
		}
		ok := stubStrategy("working", 0.6, &chatextract.ExtractionResult{
			Messages:   []chatextract.Message{{Role: chatextract.RoleUser, Content: "recovered content", Sequence: 1}},
			Method:     "working",
			Confidence: 0.6,
		}, nil)
		failing := stubStrategy("failing", 0.6, nil, chatextract.Errorf(chatextract.ENOTFOUND, "nothing here"))

		o := extract.NewOrchestrator(chatextract.ServiceClaude, panicking, ok, failing)
		conv, report, err := o.Extract(&chatextract.Document{HTML: "<html></html>"})
		require.NoError(t, err)
		assert.Equal(t, "working", conv.Method)
		assert.Equal(t, chatextract.ServiceClaude, conv.Service)

		require.Len(t, report.Attempts, 3)
		assert.False(t, report.Attempts[0].Success)
		assert.Contains(t, report.Attempts[0].Err, "panicked")
		assert.True(t, report.Attempts[1].Success)
		assert.False(t, report.Attempts[2].Success)
		assert.Equal(t, "nothing here", report.Attempts[2].Err)
	})

	t.Run("low yield strategies are skipped after a good result", func(t *testing.T) {
		t.Parallel()
		first := stubStrategy("first", 0.9, &chatextract.ExtractionResult{
			Messages:   []chatextract.Message{{Role: chatextract.RoleUser, Content: "good result", Sequence: 1}},
			Method:     "first",
			Confidence: 0.75,
		}, nil)
		skipped := &mock.Strategy{
			NameFn:       func() string { return "skipped" },
			ConfidenceFn: func(*chatextract.Document) float64 { return 0.4 },
			ExtractFn: func(*chatextract.Document) (*chatextract.ExtractionResult, error) {
				t.Error("skipped strategy must not run")
				return nil, nil
			},
		}
		third := stubStrategy("third", 0.6, &chatextract.ExtractionResult{
			Messages:   []chatextract.Message{{Role: chatextract.RoleUser, Content: "weaker result", Sequence: 1}},
			Method:     "third",
			Confidence: 0.5,
		}, nil)

		o := extract.NewOrchestrator(chatextract.ServiceGrok, first, skipped, third)
		conv, report, err := o.Extract(&chatextract.Document{HTML: "<html></html>"})
		require.NoError(t, err)
		assert.Equal(t, "first", conv.Method)
		assert.Equal(t, []string{"first", "third"}, attemptNames(report))
	})

	t.Run("high confidence exits early", func(t *testing.T) {
		t.Parallel()
		first := stubStrategy("first", 0.9, &chatextract.ExtractionResult{
			Messages:   []chatextract.Message{{Role: chatextract.RoleUser, Content: "decisive result", Sequence: 1}},
			Method:     "first",
			Confidence: 0.9,
		}, nil)
		never := &mock.Strategy{
			NameFn:       func() string { return "never" },
			ConfidenceFn: func(*chatextract.Document) float64 { return 0.9 },
			ExtractFn: func(*chatextract.Document) (*chatextract.ExtractionResult, error) {
				t.Error("strategy after early exit must not run")
				return nil, nil
			},
		}

		o := extract.NewOrchestrator(chatextract.ServiceGemini, first, never)
		_, report, err := o.Extract(&chatextract.Document{HTML: "<html></html>"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first"}, attemptNames(report))
	})

	t.Run("confidence is clipped", func(t *testing.T) {
		t.Parallel()
		inflated := stubStrategy("inflated", 0.9, &chatextract.ExtractionResult{
			Messages:   []chatextract.Message{{Role: chatextract.RoleUser, Content: "overconfident", Sequence: 1}},
			Method:     "inflated",
			Confidence: 1.7,
		}, nil)

		o := extract.NewOrchestrator(chatextract.ServiceGrok, inflated)
		conv, _, err := o.Extract(&chatextract.Document{HTML: "<html></html>"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, conv.Confidence)
	})
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	msgs := []chatextract.Message{
		{Role: chatextract.RoleUser, Content: "question", Sequence: 1},
		{Role: chatextract.RoleAssistant, Content: "answer", Sequence: 2},
	}

	assert.Equal(t, extract.ContentHash(msgs), extract.ContentHash(msgs))
	assert.Len(t, extract.ContentHash(msgs), 16)

	changed := []chatextract.Message{
		{Role: chatextract.RoleUser, Content: "question", Sequence: 1},
		{Role: chatextract.RoleAssistant, Content: "different answer", Sequence: 2},
	}
	assert.NotEqual(t, extract.ContentHash(msgs), extract.ContentHash(changed))

	// role swap must change the hash even with identical content order
	swapped := []chatextract.Message{
		{Role: chatextract.RoleAssistant, Content: "question", Sequence: 1},
		{Role: chatextract.RoleUser, Content: "answer", Sequence: 2},
	}
	assert.NotEqual(t, extract.ContentHash(msgs), extract.ContentHash(swapped))
}

func stubStrategy(name string, confidence float64, result *chatextract.ExtractionResult, err error) *mock.Strategy {
	return &mock.Strategy{
		NameFn:       func() string { return name },
		ConfidenceFn: func(*chatextract.Document) float64 { return confidence },
		ExtractFn: func(*chatextract.Document) (*chatextract.ExtractionResult, error) {
			return result, err
		},
	}
}

func attemptNames(report *chatextract.Report) []string {
	names := make([]string, 0, len(report.Attempts))
	for _, a := range report.Attempts {
		names = append(names, a.Strategy)
	}
	return names
}
