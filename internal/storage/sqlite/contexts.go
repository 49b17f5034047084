package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/mentoria/internal/core"
)

type ContextsRepo struct {
	db *sql.DB
}

func NewContextsRepo(db *sql.DB) *ContextsRepo {
	return &ContextsRepo{db: db}
}

func (r *ContextsRepo) GetContext(ctx context.Context, conversationID string) (core.ConversationContext, error) {
	var (
		raw     string
		version int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT context, version FROM conversation_context WHERE conversation_id = ?`, conversationID,
	).Scan(&raw, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ConversationContext{}, nil
	}
	if err != nil {
		return core.ConversationContext{}, fmt.Errorf("failed to query context: %w", err)
	}

	var c core.ConversationContext
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return core.ConversationContext{}, fmt.Errorf("failed to decode context: %w", err)
	}
	c.Version = version
	return c, nil
}

// PutContext upserts the context and bumps its version. The first write of a
// conversation marks the user's other conversations inactive.
func (r *ContextsRepo) PutContext(ctx context.Context, conversationID, userID string, c core.ConversationContext) error {
	raw, err := marshalJSON(c)
	if err != nil {
		return fmt.Errorf("failed to encode context: %w", err)
	}
	now := toMillis(time.Now())

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE conversation_context SET context = ?, version = version + 1, updated_at = ? WHERE conversation_id = ?`,
		raw, now, conversationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update context: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		_, err = tx.ExecContext(ctx,
			`UPDATE conversation_context SET is_active = 0 WHERE user_id = ? AND conversation_id != ?`,
			userID, conversationID,
		)
		if err != nil {
			return fmt.Errorf("failed to deactivate conversations: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO conversation_context (conversation_id, user_id, context, version, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, 1, 1, ?, ?)`,
			conversationID, userID, raw, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert context: %w", err)
		}
	}

	return tx.Commit()
}
