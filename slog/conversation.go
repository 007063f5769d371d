package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/chatextract"
)

// Ensure LoggingConversationService implements chatextract.ConversationService.
var _ chatextract.ConversationService = (*LoggingConversationService)(nil)

// LoggingConversationService wraps a ConversationService with logging
// for archive operations.
type LoggingConversationService struct {
	next   chatextract.ConversationService
	logger *slog.Logger
}

// NewLoggingConversationService creates a new LoggingConversationService.
func NewLoggingConversationService(next chatextract.ConversationService, logger *slog.Logger) *LoggingConversationService {
	return &LoggingConversationService{next: next, logger: logger}
}

// CreateConversation delegates to the wrapped service and logs the operation.
func (s *LoggingConversationService) CreateConversation(ctx context.Context, conv *chatextract.Conversation) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create conversation",
			"id", conv.ID,
			"service", conv.Service,
			"messages", len(conv.Messages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateConversation(ctx, conv)
}

// FindConversationByID delegates to the wrapped service and logs the operation.
func (s *LoggingConversationService) FindConversationByID(ctx context.Context, id string) (conv *chatextract.Conversation, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find conversation",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindConversationByID(ctx, id)
}

// FindConversations delegates to the wrapped service and logs the operation.
func (s *LoggingConversationService) FindConversations(ctx context.Context, filter chatextract.ConversationFilter) (convs []*chatextract.Conversation, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find conversations",
			"count", len(convs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindConversations(ctx, filter)
}

// DeleteConversation delegates to the wrapped service and logs the operation.
func (s *LoggingConversationService) DeleteConversation(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete conversation",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteConversation(ctx, id)
}
