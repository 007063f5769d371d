package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/chatextract"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// Ensure Asker implements chatextract.Asker at compile time.
var _ chatextract.Asker = (*Asker)(nil)

// Asker implements chatextract.Asker using Google Gemini.
type Asker struct {
	client        *genai.Client
	conversations chatextract.ConversationService
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, conversations chatextract.ConversationService) *Asker {
	return &Asker{client: client, conversations: conversations}
}

// Ask answers a natural language question about an archived
// conversation.
func (a *Asker) Ask(ctx context.Context, conversationID, question string) (string, error) {
	if conversationID == "" {
		return "", chatextract.Errorf(chatextract.EINVALID, "conversation ID required")
	}
	if question == "" {
		return "", chatextract.Errorf(chatextract.EINVALID, "question required")
	}

	conv, err := a.conversations.FindConversationByID(ctx, conversationID)
	if err != nil {
		return "", err
	}

	prompt := BuildUserPrompt(conv, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", chatextract.Errorf(chatextract.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about an archived chat conversation. Answer based only on the transcript provided. If the answer is not in the transcript, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the transcript and
// question.
func BuildUserPrompt(conv *chatextract.Conversation, question string) string {
	title := conv.Title
	if title == "" {
		title = conv.URL
	}

	var sb strings.Builder
	sb.WriteString("<conversation>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	fmt.Fprintf(&sb, "<service>%s</service>\n", chatextract.DisplayName(conv.Service))
	fmt.Fprintf(&sb, "<source>%s</source>\n", conv.URL)
	for _, msg := range conv.Messages {
		sb.WriteString("<message>\n")
		fmt.Fprintf(&sb, "<sequence>%d</sequence>\n", msg.Sequence)
		fmt.Fprintf(&sb, "<role>%s</role>\n", msg.Role)
		fmt.Fprintf(&sb, "<content>%s</content>\n", msg.Content)
		sb.WriteString("</message>\n")
	}
	sb.WriteString("</conversation>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
