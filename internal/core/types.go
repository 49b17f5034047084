package core

import "time"

const (
	MentorName          = "MentorIA"
	MentorUserAgent     = "MentorIA-Engine/0.1"
	MentorRepositoryURL = "https://github.com/sandevgo/mentoria"
	MentorVersion       = "0.1.0"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserProfile holds teacher attributes (nivel, grado, materia, ...).
// Fields are overwritten one by one and never deleted.
type UserProfile map[string]any

// Merge overwrites the profile with the given fields and returns the result.
func (p UserProfile) Merge(fields map[string]any) UserProfile {
	out := make(UserProfile, len(p)+len(fields))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// FieldInput is one structured answer coming from a button or menu. Value
// keeps its decoded JSON shape (string, number, bool or list) so profile
// fields are stored as sent.
type FieldInput struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// TurnRequest is the input of a single conversational turn.
type TurnRequest struct {
	UserID         string       `json:"user_id"`
	ConversationID string       `json:"conversation_id,omitempty"`
	Message        string       `json:"message,omitempty"`
	UserData       []FieldInput `json:"user_data,omitempty"`
}

// LoggedMessage is one row of the append-only message log.
type LoggedMessage struct {
	ID             string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	IsAgent        bool      `json:"is_agent"`
	CreatedAt      time.Time `json:"timestamp"`
}

// MessagePage is one page of the log, newest first.
type MessagePage struct {
	Messages    []LoggedMessage `json:"messages"`
	Total       int             `json:"total"`
	Page        int             `json:"page"`
	Size        int             `json:"size"`
	HasNext     bool            `json:"has_next"`
	HasPrevious bool            `json:"has_previous"`
}

type ConversationInfo struct {
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	LastMessageAt  time.Time `json:"last_message_at"`
	MessageCount   int       `json:"message_count"`
	IsActive       bool      `json:"is_active"`
}
