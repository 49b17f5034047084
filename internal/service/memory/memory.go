package memory

import (
	"time"

	"github.com/sandevgo/mentoria/internal/core"
)

// Keys of context_to_remember that map onto named context fields.
const (
	keyConversationTopics = "conversation_topics"
	keyUserPreferences    = "user_preferences"
)

// Memory folds each completed turn into the conversation context.
type Memory struct {
	maxHistoryContext int
	now               func() time.Time
}

func NewMemory(limits core.Limits) *Memory {
	return &Memory{
		maxHistoryContext: limits.MaxHistoryContext,
		now:               time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

// Merge returns the context that follows current after the executed turn.
// current is never mutated.
func (m *Memory) Merge(current core.ConversationContext, plan core.ExecutedPlan, userMessage string) core.ConversationContext {
	now := m.now()

	history := make([]core.HistoryEntry, 0, len(current.History)+2)
	history = append(history, current.History...)
	history = append(history,
		core.HistoryEntry{
			Role:      core.RoleUser,
			Content:   userMessage,
			Timestamp: now,
		},
		core.HistoryEntry{
			Role:      core.RoleAssistant,
			Content:   plan.ResponseSummary,
			Intent:    plan.Intent,
			Type:      string(plan.ResponseKind),
			Timestamp: now,
		},
	)

	next := core.ConversationContext{
		History:            trimHistory(history, 2*m.maxHistoryContext),
		MessageCount:       current.MessageCount + 1,
		LastIntent:         plan.Intent,
		LastUserMessage:    userMessage,
		LastSelectedOption: current.LastSelectedOption,
		ProfileUpdates:     current.ProfileUpdates,
		PendingPrompt:      current.PendingPrompt,
		ConversationTopics: current.ConversationTopics,
		UserPreferences:    current.UserPreferences,
		Remembered:         copyMap(current.Remembered),
		WelcomeShown:       true,
		LastUpdated:        now,
		Version:            current.Version,
	}

	if plan.SelectedOption != "" {
		next.LastSelectedOption = plan.SelectedOption
	}
	if len(plan.UpdatedFields) > 0 {
		next.ProfileUpdates = copyMap(plan.UpdatedFields)
		// the answer resumed the pending prompt; it is not resumed twice
		next.PendingPrompt = ""
	}
	if plan.PendingPrompt != "" {
		next.PendingPrompt = plan.PendingPrompt
	}

	for k, v := range plan.ContextToRemember {
		switch k {
		case keyConversationTopics:
			if topics, ok := toStrings(v); ok {
				next.ConversationTopics = topics
				continue
			}
		case keyUserPreferences:
			if prefs, ok := v.(map[string]any); ok {
				next.UserPreferences = copyMap(prefs)
				continue
			}
		}
		if next.Remembered == nil {
			next.Remembered = make(map[string]any)
		}
		next.Remembered[k] = v
	}

	return next
}

// trimHistory keeps the most recent limit entries.
func trimHistory(history []core.HistoryEntry, limit int) []core.HistoryEntry {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return append([]core.HistoryEntry(nil), history[len(history)-limit:]...)
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...), true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
