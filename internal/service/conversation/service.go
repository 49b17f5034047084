// Package conversation serves read-only views of the message log.
package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 50
)

type Service struct {
	messages core.MessagesRepository
}

func NewService(messages core.MessagesRepository) *Service {
	return &Service{messages: messages}
}

// Messages returns one page of a conversation, newest first.
func (s *Service) Messages(ctx context.Context, conversationID string, page, size int) (core.MessagePage, error) {
	if strings.TrimSpace(conversationID) == "" {
		return core.MessagePage{}, fmt.Errorf("%w: conversation id is required", core.ErrInvalidInput)
	}
	if page < 1 {
		return core.MessagePage{}, fmt.Errorf("%w: page must be at least 1, got %d", core.ErrInvalidPagination, page)
	}
	if size < 1 || size > MaxPageSize {
		return core.MessagePage{}, fmt.Errorf("%w: size must be between 1 and %d, got %d", core.ErrInvalidPagination, MaxPageSize, size)
	}
	return s.messages.ListMessages(ctx, conversationID, page, size)
}

// Latest returns the id of the conversation the user wrote to last.
func (s *Service) Latest(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("%w: user id is required", core.ErrInvalidInput)
	}
	return s.messages.LatestConversation(ctx, userID)
}

func (s *Service) Info(ctx context.Context, conversationID string) (core.ConversationInfo, error) {
	if strings.TrimSpace(conversationID) == "" {
		return core.ConversationInfo{}, fmt.Errorf("%w: conversation id is required", core.ErrInvalidInput)
	}
	return s.messages.ConversationInfo(ctx, conversationID)
}
