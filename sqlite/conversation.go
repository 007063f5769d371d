package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/chatextract"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ chatextract.ConversationService = (*ConversationService)(nil)

// ConversationService implements chatextract.ConversationService using
// SQLite.
type ConversationService struct {
	db *DB
}

// NewConversationService creates a new ConversationService.
func NewConversationService(db *DB) *ConversationService {
	return &ConversationService{db: db}
}

// CreateConversation archives a conversation and its messages.
// Returns ECONFLICT when a conversation with the same content hash is
// already archived.
func (s *ConversationService) CreateConversation(ctx context.Context, conv *chatextract.Conversation) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if conv.ExtractedAt.IsZero() {
		conv.ExtractedAt = time.Now().UTC()
	}

	if conv.ContentHash != "" {
		var existing string
		err := s.db.QueryRowContext(ctx, `
			SELECT id FROM conversations WHERE content_hash = ?
		`, conv.ContentHash).Scan(&existing)
		if err == nil {
			return chatextract.Errorf(chatextract.ECONFLICT, "conversation already archived as %s", existing)
		}
		if err != sql.ErrNoRows {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO conversations (id, service, title, url, method, confidence, content_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, conv.ID, string(conv.Service), conv.Title, conv.URL, conv.Method, conv.Confidence,
		conv.ContentHash, conv.ExtractedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, m := range conv.Messages {
		ts := ""
		if !m.Timestamp.IsZero() {
			ts = m.Timestamp.Format(time.RFC3339)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO messages (conversation_id, sequence, role, content, timestamp)
			VALUES (?, ?, ?, ?, ?)
		`, conv.ID, m.Sequence, string(m.Role), m.Content, ts)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindConversationByID retrieves a conversation with its messages.
func (s *ConversationService) FindConversationByID(ctx context.Context, id string) (*chatextract.Conversation, error) {
	var conv chatextract.Conversation
	var service, extractedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, service, title, url, method, confidence, content_hash, extracted_at
		FROM conversations
		WHERE id = ?
	`, id).Scan(&conv.ID, &service, &conv.Title, &conv.URL, &conv.Method,
		&conv.Confidence, &conv.ContentHash, &extractedAt)

	if err == sql.ErrNoRows {
		return nil, chatextract.Errorf(chatextract.ENOTFOUND, "conversation not found")
	}
	if err != nil {
		return nil, err
	}

	conv.Service = chatextract.Service(service)
	conv.ExtractedAt, err = time.Parse(time.RFC3339, extractedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extracted_at: %w", err)
	}

	if conv.Messages, err = s.findMessages(ctx, conv.ID); err != nil {
		return nil, err
	}

	return &conv, nil
}

// FindConversations retrieves conversations matching the filter,
// messages included.
func (s *ConversationService) FindConversations(ctx context.Context, filter chatextract.ConversationFilter) ([]*chatextract.Conversation, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, service, title, url, method, confidence, content_hash, extracted_at FROM conversations WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Service != nil {
		query.WriteString(" AND service = ?")
		args = append(args, string(*filter.Service))
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	switch filter.SortBy {
	case chatextract.SortByTitle:
		query.WriteString(" ORDER BY title ASC")
	default:
		query.WriteString(" ORDER BY extracted_at DESC")
	}

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*chatextract.Conversation
	for rows.Next() {
		var conv chatextract.Conversation
		var service, extractedAt string

		if err := rows.Scan(&conv.ID, &service, &conv.Title, &conv.URL, &conv.Method,
			&conv.Confidence, &conv.ContentHash, &extractedAt); err != nil {
			return nil, err
		}

		conv.Service = chatextract.Service(service)
		conv.ExtractedAt, err = time.Parse(time.RFC3339, extractedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse extracted_at: %w", err)
		}

		convs = append(convs, &conv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, conv := range convs {
		if conv.Messages, err = s.findMessages(ctx, conv.ID); err != nil {
			return nil, err
		}
	}

	return convs, nil
}

// DeleteConversation permanently removes a conversation and its
// messages.
func (s *ConversationService) DeleteConversation(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return chatextract.Errorf(chatextract.ENOTFOUND, "conversation not found")
	}
	return nil
}

// findMessages loads a conversation's messages in sequence order.
func (s *ConversationService) findMessages(ctx context.Context, conversationID string) ([]chatextract.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT sequence, role, content, timestamp
		FROM messages
		WHERE conversation_id = ?
		ORDER BY sequence ASC
	`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chatextract.Message
	for rows.Next() {
		var m chatextract.Message
		var role, ts string

		if err := rows.Scan(&m.Sequence, &role, &m.Content, &ts); err != nil {
			return nil, err
		}

		m.Role = chatextract.Role(role)
		if ts != "" {
			m.Timestamp, err = time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("failed to parse message timestamp: %w", err)
			}
		}

		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}
