package memory

import (
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestRotator_MaybeRotate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		max         int
		count       int
		wantRotated bool
	}{
		{name: "fresh conversation", max: 20, count: 0},
		{name: "one below budget", max: 20, count: 19},
		{name: "budget reached", max: 20, count: 20, wantRotated: true},
		{name: "budget exceeded", max: 20, count: 31, wantRotated: true},
		{name: "rotation disabled", max: 0, count: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRotator(core.Limits{MaxMessagesPerConversation: tt.max}).
				WithIDGenerator(func() string { return "conv-new" })

			current := core.ConversationContext{
				MessageCount: tt.count,
				LastIntent:   "consulta",
				History:      []core.HistoryEntry{{Role: core.RoleUser, Content: "hola"}},
			}

			id, c, rotated := r.MaybeRotate("conv-old", current)

			assert.Equal(t, tt.wantRotated, rotated)
			if tt.wantRotated {
				assert.Equal(t, "conv-new", id)
				assert.Equal(t, core.ConversationContext{}, c)
				return
			}
			assert.Equal(t, "conv-old", id)
			assert.Equal(t, current, c)
		})
	}
}

func TestRotator_DefaultIDsAreUnique(t *testing.T) {
	t.Parallel()
	r := NewRotator(core.Limits{MaxMessagesPerConversation: 1})
	full := core.ConversationContext{MessageCount: 1}

	a, _, _ := r.MaybeRotate("x", full)
	b, _, _ := r.MaybeRotate("x", full)

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, "x", a)
}
