package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedTurns struct {
	reqs []core.TurnRequest
	err  error
}

func (s *scriptedTurns) HandleTurn(_ context.Context, req core.TurnRequest) (core.Response, error) {
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return core.Response{}, s.err
	}
	return core.Response{
		ConversationID: "c1",
		Kind:           core.KindWelcome,
		Data: core.WelcomeData{
			Message: "¡Bienvenido!",
			Options: []core.MenuOption{{Label: "Planeaciones", Value: "planeaciones"}, {Label: "Perfil", Value: "perfil"}},
		},
	}, nil
}

type fakeRouter struct{ calls int }

func (f *fakeRouter) Execute(_ context.Context, s *core.Session, input string) (string, bool) {
	f.calls++
	if input == "/new" {
		s.ConversationID = ""
		return "nueva", true
	}
	return "", false
}

func (f *fakeRouter) ListCommands() []core.Command { return nil }

func newChat(turns core.TurnHandler) (*Chat, *fakeRouter) {
	router := &fakeRouter{}
	return NewChat("cli-local", turns, state.NewSessions(nil), router), router
}

func TestChat_Handle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	turns := &scriptedTurns{}
	chat, router := newChat(turns)

	out := chat.Handle(ctx, "hola")
	assert.Contains(t, out, "1) Planeaciones")
	require.Len(t, turns.reqs, 1)
	assert.Equal(t, core.TurnRequest{UserID: "cli-local", Message: "hola"}, turns.reqs[0])

	chat.Handle(ctx, "2")
	require.Len(t, turns.reqs, 2)
	assert.Equal(t, "c1", turns.reqs[1].ConversationID)
	assert.Equal(t, []core.FieldInput{{Field: "menu_option", Value: "perfil"}}, turns.reqs[1].UserData)

	chat.Handle(ctx, "7")
	require.Len(t, turns.reqs, 3)
	assert.Equal(t, "7", turns.reqs[2].Message)

	chat.Handle(ctx, "/set grado = quinto")
	require.Len(t, turns.reqs, 4)
	assert.Equal(t, []core.FieldInput{{Field: "grado", Value: "quinto"}}, turns.reqs[3].UserData)

	assert.Equal(t, "Uso: /set campo=valor", chat.Handle(ctx, "/set grado"))
	assert.Contains(t, chat.Handle(ctx, "/menu"), "2) Perfil")
	assert.Equal(t, "", chat.Handle(ctx, "   "))
	assert.Len(t, turns.reqs, 4)

	assert.Equal(t, "nueva", chat.Handle(ctx, "/new"))
	chat.Handle(ctx, "otra vez")
	assert.Empty(t, turns.reqs[4].ConversationID)
	assert.Equal(t, 1, router.calls)
}

func TestChat_UnknownSlashGoesToEngine(t *testing.T) {
	t.Parallel()
	turns := &scriptedTurns{}
	chat, _ := newChat(turns)

	chat.Handle(context.Background(), "/foo")
	require.Len(t, turns.reqs, 1)
	assert.Equal(t, "/foo", turns.reqs[0].Message)
}

func TestChat_TurnError(t *testing.T) {
	t.Parallel()
	chat, _ := newChat(&scriptedTurns{err: errors.New("internal error")})

	out := chat.Handle(context.Background(), "hola")
	assert.Contains(t, out, "internal error")
	assert.Contains(t, chat.Handle(context.Background(), "/menu"), "/set campo=valor")
}
