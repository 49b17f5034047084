package core

import "context"

type ProfileRepository interface {
	// GetProfile returns an empty profile when the user has none.
	GetProfile(ctx context.Context, userID string) (UserProfile, error)
	PutProfile(ctx context.Context, userID string, profile UserProfile) error
}

type ContextRepository interface {
	// GetContext returns an empty context when the conversation is unknown.
	GetContext(ctx context.Context, conversationID string) (ConversationContext, error)
	// PutContext replaces the stored context. Concurrent writers race with
	// last-write-wins.
	PutContext(ctx context.Context, conversationID, userID string, c ConversationContext) error
}

type MessagesRepository interface {
	AppendMessage(ctx context.Context, msg LoggedMessage) error
	ListMessages(ctx context.Context, conversationID string, page, size int) (MessagePage, error)
	LatestConversation(ctx context.Context, userID string) (string, error)
	ConversationInfo(ctx context.Context, conversationID string) (ConversationInfo, error)
}

type ContentRepository interface {
	Upsert(ctx context.Context, item ContentItem) error
	Delete(ctx context.Context, contentType, id string) error
	List(ctx context.Context, contentType string, page, size int) ([]ContentItem, int, error)
	Nearest(ctx context.Context, vector []float32, k int) ([]SearchResult, error)
}
