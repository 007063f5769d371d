package chatextract_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/chatextract"
	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		service chatextract.Service
		want    chatextract.Role
		ok      bool
	}{
		{"user", chatextract.ServiceChatGPT, chatextract.RoleUser, true},
		{"Human", chatextract.ServiceClaude, chatextract.RoleUser, true},
		{"you", chatextract.ServiceGrok, chatextract.RoleUser, true},
		{"assistant", chatextract.ServiceChatGPT, chatextract.RoleAssistant, true},
		{"AI", chatextract.ServiceGemini, chatextract.RoleAssistant, true},
		{"bot", chatextract.ServiceGrok, chatextract.RoleAssistant, true},
		{"model", chatextract.ServiceGemini, chatextract.RoleAssistant, true},
		{"system", chatextract.ServiceChatGPT, chatextract.RoleAssistant, true},
		{"chatgpt", chatextract.ServiceChatGPT, chatextract.RoleAssistant, true},
		{"gpt", chatextract.ServiceChatGPT, chatextract.RoleAssistant, true},
		{"claude", chatextract.ServiceClaude, chatextract.RoleAssistant, true},
		{"bard", chatextract.ServiceGemini, chatextract.RoleAssistant, true},
		{"grok", chatextract.ServiceGrok, chatextract.RoleAssistant, true},
		// service aliases only apply to their own service
		{"claude", chatextract.ServiceChatGPT, "", false},
		{"grok", chatextract.ServiceGemini, "", false},
		{"narrator", chatextract.ServiceChatGPT, "", false},
		{"", chatextract.ServiceChatGPT, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw+"/"+string(tt.service), func(t *testing.T) {
			t.Parallel()

			role, ok := chatextract.ParseRole(tt.raw, tt.service)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, role)
		})
	}
}

func TestAlternatingRole(t *testing.T) {
	t.Parallel()

	assert.Equal(t, chatextract.RoleUser, chatextract.AlternatingRole(1))
	assert.Equal(t, chatextract.RoleAssistant, chatextract.AlternatingRole(2))
	assert.Equal(t, chatextract.RoleUser, chatextract.AlternatingRole(3))
}

func TestDedupe(t *testing.T) {
	t.Parallel()

	t.Run("collapses messages sharing role and 100-char prefix", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("a", 100)
		msgs := []chatextract.Message{
			{Role: chatextract.RoleUser, Content: long + " first tail", Sequence: 1},
			{Role: chatextract.RoleUser, Content: long + " second tail", Sequence: 2},
		}

		out := chatextract.Dedupe(msgs)

		assert.Len(t, out, 1)
		assert.Equal(t, long+" first tail", out[0].Content, "first occurrence survives")
	})

	t.Run("same content different role is kept", func(t *testing.T) {
		t.Parallel()

		msgs := []chatextract.Message{
			{Role: chatextract.RoleUser, Content: "hello", Sequence: 1},
			{Role: chatextract.RoleAssistant, Content: "hello", Sequence: 2},
		}

		out := chatextract.Dedupe(msgs)

		assert.Len(t, out, 2)
	})

	t.Run("exact duplicates collapse keeping first", func(t *testing.T) {
		t.Parallel()

		msgs := []chatextract.Message{
			{Role: chatextract.RoleUser, Content: "hi", Sequence: 1},
			{Role: chatextract.RoleAssistant, Content: "hello", Sequence: 2},
			{Role: chatextract.RoleUser, Content: "hi", Sequence: 1},
		}

		out := chatextract.Dedupe(msgs)

		assert.Len(t, out, 2)
		assert.Equal(t, chatextract.RoleUser, out[0].Role)
		assert.Equal(t, chatextract.RoleAssistant, out[1].Role)
	})
}

func TestResequence(t *testing.T) {
	t.Parallel()

	t.Run("renumbers contiguously from 1 after drops", func(t *testing.T) {
		t.Parallel()

		msgs := []chatextract.Message{
			{Content: "third", Sequence: 7},
			{Content: "first", Sequence: 2},
			{Content: "second", Sequence: 5},
		}

		out := chatextract.Resequence(msgs)

		assert.Equal(t, []int{1, 2, 3}, []int{out[0].Sequence, out[1].Sequence, out[2].Sequence})
		assert.Equal(t, "first", out[0].Content)
		assert.Equal(t, "second", out[1].Content)
		assert.Equal(t, "third", out[2].Content)
	})

	t.Run("preserves order of equal sequences", func(t *testing.T) {
		t.Parallel()

		msgs := []chatextract.Message{
			{Content: "a", Sequence: 1},
			{Content: "b", Sequence: 1},
		}

		out := chatextract.Resequence(msgs)

		assert.Equal(t, "a", out[0].Content)
		assert.Equal(t, "b", out[1].Content)
		assert.Equal(t, 1, out[0].Sequence)
		assert.Equal(t, 2, out[1].Sequence)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		t.Parallel()

		msgs := []chatextract.Message{{Content: "a", Sequence: 9}}

		_ = chatextract.Resequence(msgs)

		assert.Equal(t, 9, msgs[0].Sequence)
	})
}

func TestSignature_MultibyteSafe(t *testing.T) {
	t.Parallel()

	// 100-rune prefix must not split multibyte characters.
	content := strings.Repeat("é", 150)
	msg := chatextract.Message{Role: chatextract.RoleUser, Content: content}

	sig := chatextract.Signature(msg)

	assert.Equal(t, "user:"+strings.Repeat("é", 100), sig)
}
