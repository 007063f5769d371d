package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/chatextract"
	"github.com/fwojciec/chatextract/gemini"
	"github.com/fwojciec/chatextract/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsker_Ask_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	conversations := &mock.ConversationService{
		FindConversationByIDFn: func(context.Context, string) (*chatextract.Conversation, error) {
			return nil, chatextract.Errorf(chatextract.ENOTFOUND, "conversation not found")
		},
	}

	asker := gemini.NewAsker(nil, conversations) // nil client ok for this test

	_, err := asker.Ask(context.Background(), "conv-1", "what was discussed?")

	require.Error(t, err)
	assert.Equal(t, chatextract.ENOTFOUND, chatextract.ErrorCode(err))
	assert.Contains(t, chatextract.ErrorMessage(err), "not found")
}

func TestAsker_Ask_PropagatesConversationServiceError(t *testing.T) {
	t.Parallel()

	expectedErr := chatextract.Errorf(chatextract.EINTERNAL, "database error")
	conversations := &mock.ConversationService{
		FindConversationByIDFn: func(context.Context, string) (*chatextract.Conversation, error) {
			return nil, expectedErr
		},
	}

	asker := gemini.NewAsker(nil, conversations)

	_, err := asker.Ask(context.Background(), "conv-1", "what was discussed?")

	require.Error(t, err)
	assert.Equal(t, chatextract.EINTERNAL, chatextract.ErrorCode(err))
	assert.Contains(t, chatextract.ErrorMessage(err), "database error")
}

func TestAsker_Ask_ReturnsErrorWhenConversationIDEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil, nil)

	_, err := asker.Ask(context.Background(), "", "what was discussed?")

	require.Error(t, err)
	assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
	assert.Contains(t, chatextract.ErrorMessage(err), "conversation ID required")
}

func TestAsker_Ask_ReturnsErrorWhenQuestionEmpty(t *testing.T) {
	t.Parallel()

	asker := gemini.NewAsker(nil, nil)

	_, err := asker.Ask(context.Background(), "conv-1", "")

	require.Error(t, err)
	assert.Equal(t, chatextract.EINVALID, chatextract.ErrorCode(err))
	assert.Contains(t, chatextract.ErrorMessage(err), "question required")
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Contains(t, config.SystemInstruction.Parts[0].Text, "helpful assistant")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig()

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.4, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsTranscript(t *testing.T) {
	t.Parallel()

	conv := &chatextract.Conversation{
		Title:   "Pointer Semantics",
		Service: chatextract.ServiceClaude,
		URL:     "https://claude.ai/share/abc",
		Messages: []chatextract.Message{
			{Role: chatextract.RoleUser, Content: "When should I use pointers?", Sequence: 1},
			{Role: chatextract.RoleAssistant, Content: "When the callee must mutate state.", Sequence: 2},
		},
	}

	prompt := gemini.BuildUserPrompt(conv, "What did we conclude?")

	assert.Contains(t, prompt, "<conversation>")
	assert.Contains(t, prompt, "<title>Pointer Semantics</title>")
	assert.Contains(t, prompt, "<service>Claude</service>")
	assert.Contains(t, prompt, "<role>user</role>")
	assert.Contains(t, prompt, "When the callee must mutate state.")
	assert.Contains(t, prompt, "</conversation>")
	assert.Contains(t, prompt, "Question: What did we conclude?")
}

func TestBuildUserPrompt_UsesURLWhenTitleEmpty(t *testing.T) {
	t.Parallel()

	conv := &chatextract.Conversation{
		URL: "https://chatgpt.com/share/xyz",
		Messages: []chatextract.Message{
			{Role: chatextract.RoleUser, Content: "hi", Sequence: 1},
		},
	}

	prompt := gemini.BuildUserPrompt(conv, "question")

	assert.Contains(t, prompt, "<title>https://chatgpt.com/share/xyz</title>")
}

func TestBuildUserPrompt_DoesNotContainSystemInstruction(t *testing.T) {
	t.Parallel()

	conv := &chatextract.Conversation{
		Messages: []chatextract.Message{{Role: chatextract.RoleUser, Content: "hi", Sequence: 1}},
	}

	prompt := gemini.BuildUserPrompt(conv, "question")

	assert.NotContains(t, prompt, "You are a helpful assistant")
}
