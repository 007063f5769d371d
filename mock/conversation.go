package mock

import (
	"context"

	"github.com/fwojciec/chatextract"
)

var _ chatextract.ConversationService = (*ConversationService)(nil)

// ConversationService is a mock implementation of
// chatextract.ConversationService.
type ConversationService struct {
	CreateConversationFn   func(ctx context.Context, conv *chatextract.Conversation) error
	FindConversationByIDFn func(ctx context.Context, id string) (*chatextract.Conversation, error)
	FindConversationsFn    func(ctx context.Context, filter chatextract.ConversationFilter) ([]*chatextract.Conversation, error)
	DeleteConversationFn   func(ctx context.Context, id string) error
}

func (s *ConversationService) CreateConversation(ctx context.Context, conv *chatextract.Conversation) error {
	return s.CreateConversationFn(ctx, conv)
}

func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*chatextract.Conversation, error) {
	return s.FindConversationByIDFn(ctx, id)
}

func (s *ConversationService) FindConversations(ctx context.Context, filter chatextract.ConversationFilter) ([]*chatextract.Conversation, error) {
	return s.FindConversationsFn(ctx, filter)
}

func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	return s.DeleteConversationFn(ctx, id)
}
