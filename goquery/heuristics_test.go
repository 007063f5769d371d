package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatextract/goquery"
	"github.com/stretchr/testify/assert"
)

func TestLooksLikeUI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		tag   string
		class string
		text  string
		want  bool
	}{
		{name: "button tag", tag: "button", text: "Send", want: true},
		{name: "nav class", tag: "div", class: "top-nav-wrapper", text: "Home", want: true},
		{name: "toolbar class", tag: "div", class: "editor-toolbar", text: "Bold", want: true},
		{name: "copy label", tag: "span", text: "Copy code", want: true},
		{name: "sign in label", tag: "a", text: "Sign in", want: true},
		{name: "message content", tag: "div", class: "message", text: "How do I write a test in Go?", want: false},
		{name: "long text never a label", tag: "div", text: "copy " + strings.Repeat("word ", 20), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.LooksLikeUI(tt.tag, tt.class, tt.text))
		})
	}
}

func TestLooksLikeUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "question", text: "What is the capital of France?", want: true},
		{name: "short request", text: "Please write a haiku about autumn leaves", want: true},
		{name: "very short utterance", text: "hi there friend", want: true},
		{name: "long prose", text: strings.Repeat("word ", 30) + "end", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.LooksLikeUserMessage(tt.text))
		})
	}
}

func TestLooksLikeAssistantMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "long response", text: strings.Repeat("informative word ", 60), want: true},
		{name: "bulleted list", text: "Options:\n- first\n- second", want: true},
		{name: "numbered list", text: "Steps:\n1. install\n2. configure", want: true},
		{name: "helpful phrasing", text: "Sure, here's an example you can adapt.", want: true},
		{name: "plain short text", text: "the weather was cold that day", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.LooksLikeAssistantMessage(tt.text))
		})
	}
}

func TestScore(t *testing.T) {
	t.Parallel()

	t.Run("pinned values", func(t *testing.T) {
		t.Parallel()
		assert.InDelta(t, 0.0, goquery.Score(false, 0), 0.001)
		assert.InDelta(t, 0.3, goquery.Score(true, 0), 0.001)
		assert.InDelta(t, 0.75, goquery.Score(true, 1), 0.001)
		assert.InDelta(t, 0.9, goquery.Score(true, 4), 0.001)
		assert.InDelta(t, 1.0, goquery.Score(true, 6), 0.001)
		assert.InDelta(t, 1.0, goquery.Score(true, 100), 0.001)
	})

	t.Run("non decreasing in element count", func(t *testing.T) {
		t.Parallel()
		prev := 0.0
		for n := range 20 {
			score := goquery.Score(true, n)
			assert.GreaterOrEqual(t, score, prev)
			assert.LessOrEqual(t, score, 1.0)
			prev = score
		}
	})
}
