package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

func (r *MessagesRepo) AppendMessage(ctx context.Context, msg core.LoggedMessage) error {
	query := `
		INSERT INTO messages (message_id, conversation_id, user_id, role, content, is_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ConversationID, msg.UserID, string(msg.Role), msg.Content, msg.IsAgent, toMillis(msg.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListMessages returns one page of the conversation log, newest first.
func (r *MessagesRepo) ListMessages(ctx context.Context, conversationID string, page, size int) (core.MessagePage, error) {
	result := core.MessagePage{Page: page, Size: size, Messages: []core.LoggedMessage{}}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE conversation_id = ?`, conversationID,
	).Scan(&result.Total)
	if err != nil {
		return core.MessagePage{}, fmt.Errorf("failed to count messages: %w", err)
	}

	query := `
		SELECT message_id, conversation_id, user_id, role, content, is_agent, created_at
		FROM messages
		WHERE conversation_id = ?
		ORDER BY seq DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, conversationID, size, offset(page, size))
	if err != nil {
		return core.MessagePage{}, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			msg     core.LoggedMessage
			role    string
			content sql.NullString
			created int64
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.UserID, &role, &content, &msg.IsAgent, &created); err != nil {
			return core.MessagePage{}, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = core.Role(role)
		msg.Content = content.String
		msg.CreatedAt = fromMillis(created)
		result.Messages = append(result.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return core.MessagePage{}, err
	}

	result.HasPrevious = page > 1
	result.HasNext = page*size < result.Total

	log.FromCtx(ctx).Debug().
		Str("conversation_id", conversationID).
		Int("count", len(result.Messages)).
		Msg("loaded message page")
	return result, nil
}

// LatestConversation returns the conversation the user wrote to last.
func (r *MessagesRepo) LatestConversation(ctx context.Context, userID string) (string, error) {
	var convID string
	err := r.db.QueryRowContext(ctx,
		`SELECT conversation_id FROM messages WHERE user_id = ? ORDER BY seq DESC LIMIT 1`, userID,
	).Scan(&convID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", core.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query latest conversation: %w", err)
	}
	return convID, nil
}

func (r *MessagesRepo) ConversationInfo(ctx context.Context, conversationID string) (core.ConversationInfo, error) {
	info := core.ConversationInfo{ConversationID: conversationID}

	var created, updated int64
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, created_at, updated_at, is_active FROM conversation_context WHERE conversation_id = ?`,
		conversationID,
	).Scan(&info.UserID, &created, &updated, &info.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ConversationInfo{}, core.ErrNotFound
	}
	if err != nil {
		return core.ConversationInfo{}, fmt.Errorf("failed to query conversation: %w", err)
	}
	info.CreatedAt = fromMillis(created)
	info.LastMessageAt = fromMillis(updated)

	var last sql.NullInt64
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MAX(created_at) FROM messages WHERE conversation_id = ?`, conversationID,
	).Scan(&info.MessageCount, &last)
	if err != nil {
		return core.ConversationInfo{}, fmt.Errorf("failed to count messages: %w", err)
	}
	if last.Valid {
		info.LastMessageAt = fromMillis(last.Int64)
	}

	return info, nil
}
