package core

import "time"

// Entry types stored in the rolling history.
const (
	EntryWelcome = "welcome"
)

type HistoryEntry struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Intent    string    `json:"intent,omitempty"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the per-conversation state carried across turns.
// Remembered is the open extension map filled from plan "context_to_remember".
type ConversationContext struct {
	History            []HistoryEntry `json:"history"`
	MessageCount       int            `json:"message_count"`
	LastIntent         string         `json:"last_intent,omitempty"`
	LastUserMessage    string         `json:"last_user_message,omitempty"`
	LastSelectedOption string         `json:"last_selected_option,omitempty"`
	ProfileUpdates     map[string]any `json:"profile_updates,omitempty"`
	PendingPrompt      string         `json:"last_user_prompt_for_buttons,omitempty"`
	ConversationTopics []string       `json:"conversation_topics,omitempty"`
	UserPreferences    map[string]any `json:"user_preferences,omitempty"`
	Remembered         map[string]any `json:"context_to_remember,omitempty"`
	WelcomeShown       bool           `json:"welcome_shown"`
	LastUpdated        time.Time      `json:"last_updated,omitempty"`
	// Version is maintained by the store and bumped on every write.
	Version int64 `json:"-"`
}

// IsFresh reports whether the conversation has never produced a turn.
func (c ConversationContext) IsFresh() bool {
	return len(c.History) == 0
}

// ExecutedPlan is what a completed turn contributes to the context.
type ExecutedPlan struct {
	Intent            string
	Analysis          string
	ActionType        ActionType
	ResponseKind      ResponseKind
	ResponseSummary   string
	SelectedOption    string
	UpdatedFields     map[string]any
	PendingPrompt     string
	ContextToRemember map[string]any
}
