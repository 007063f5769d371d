package chatextract

import (
	"context"
	"time"
)

// Conversation represents a complete extracted conversation.
type Conversation struct {
	ID          string    `json:"id"`
	Service     Service   `json:"service"`
	Title       string    `json:"title,omitempty"`
	URL         string    `json:"url,omitempty"`
	Messages    []Message `json:"messages"`
	ExtractedAt time.Time `json:"extractedAt"`
	Method      string    `json:"method"`
	Confidence  float64   `json:"confidence"`
	ContentHash string    `json:"contentHash,omitempty"`
}

// Validate returns an error if the conversation contains invalid fields.
func (c *Conversation) Validate() error {
	if c.Service == ServiceUnknown {
		return Errorf(EINVALID, "conversation service required")
	}
	if len(c.Messages) == 0 {
		return Errorf(EINVALID, "conversation requires at least one message")
	}
	return nil
}

// UserMessages returns the user turns in order.
func (c *Conversation) UserMessages() []Message {
	return c.withRole(RoleUser)
}

// AssistantMessages returns the assistant turns in order.
func (c *Conversation) AssistantMessages() []Message {
	return c.withRole(RoleAssistant)
}

func (c *Conversation) withRole(role Role) []Message {
	var out []Message
	for _, m := range c.Messages {
		if m.Role == role {
			out = append(out, m)
		}
	}
	return out
}

// SortOrder represents the sort order for conversation queries.
type SortOrder string

// SortOrder constants for ConversationFilter.
const (
	SortByExtractedAt SortOrder = "extracted_at"
	SortByTitle       SortOrder = "title"
)

// ConversationFilter represents a filter for FindConversations.
type ConversationFilter struct {
	ID      *string  `json:"id"`
	Service *Service `json:"service"`
	URL     *string  `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// ConversationService represents a service for archiving extracted
// conversations.
type ConversationService interface {
	// CreateConversation archives a conversation and its messages.
	CreateConversation(ctx context.Context, conv *Conversation) error

	// FindConversationByID retrieves a conversation with its messages.
	// Returns ENOTFOUND if the conversation does not exist.
	FindConversationByID(ctx context.Context, id string) (*Conversation, error)

	// FindConversations retrieves conversations matching the filter,
	// messages included.
	FindConversations(ctx context.Context, filter ConversationFilter) ([]*Conversation, error)

	// DeleteConversation permanently removes a conversation and its
	// messages. Returns ENOTFOUND if the conversation does not exist.
	DeleteConversation(ctx context.Context, id string) error
}

// Asker provides natural language question answering over an archived
// conversation.
type Asker interface {
	// Ask answers a question about the conversation with the given ID.
	// Returns ENOTFOUND if the conversation does not exist.
	Ask(ctx context.Context, conversationID string, question string) (string, error)
}
