// Package state tracks which conversation each chat user is currently in.
package state

import (
	"context"
	"errors"
	"sync"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

type latestFinder interface {
	Latest(ctx context.Context, userID string) (string, error)
}

// Sessions maps user ids to their live session. A user seen for the first
// time resumes their most recent stored conversation.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*core.Session
	latest   latestFinder
}

func NewSessions(latest latestFinder) *Sessions {
	return &Sessions{
		sessions: make(map[string]*core.Session),
		latest:   latest,
	}
}

// Get returns a copy of the session for userID.
func (s *Sessions) Get(ctx context.Context, userID string) core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.load(ctx, userID)
}

// Update runs fn against the user's session under the registry lock.
func (s *Sessions) Update(ctx context.Context, userID string, fn func(*core.Session)) core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := s.load(ctx, userID)
	fn(session)
	return *session
}

func (s *Sessions) load(ctx context.Context, userID string) *core.Session {
	if session, ok := s.sessions[userID]; ok {
		return session
	}

	session := &core.Session{UserID: userID}
	if s.latest != nil {
		id, err := s.latest.Latest(ctx, userID)
		switch {
		case err == nil:
			session.ConversationID = id
		case errors.Is(err, core.ErrNotFound):
		default:
			log.FromCtx(ctx).Warn().Err(err).Str("user_id", userID).Msg("failed to look up latest conversation")
		}
	}
	s.sessions[userID] = session
	return session
}
