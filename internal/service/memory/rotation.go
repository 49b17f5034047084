package memory

import (
	"github.com/google/uuid"
	"github.com/sandevgo/mentoria/internal/core"
)

// Rotator starts a fresh conversation once the message budget is spent.
// The old conversation stays untouched in the store.
type Rotator struct {
	maxMessages int
	newID       func() string
}

func NewRotator(limits core.Limits) *Rotator {
	return &Rotator{
		maxMessages: limits.MaxMessagesPerConversation,
		newID:       uuid.NewString,
	}
}

// WithIDGenerator replaces the conversation id source. Intended for tests.
func (r *Rotator) WithIDGenerator(fn func() string) *Rotator {
	r.newID = fn
	return r
}

// MaybeRotate returns the id and context the turn should continue with.
// A non-positive budget disables rotation.
func (r *Rotator) MaybeRotate(conversationID string, c core.ConversationContext) (string, core.ConversationContext, bool) {
	if r.maxMessages <= 0 || c.MessageCount < r.maxMessages {
		return conversationID, c, false
	}
	return r.newID(), core.ConversationContext{MessageCount: 0}, true
}
