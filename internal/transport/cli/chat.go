package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/state"
	"github.com/sandevgo/mentoria/internal/service/ui"
	"github.com/sandevgo/mentoria/pkg/log"
)

const helpText = `Escribe tu mensaje o el número de una opción.
  /menu              volver a mostrar las opciones
  /set campo=valor   enviar un dato de perfil
  exit               salir`

// Chat turns terminal lines into engine turns for a single local user.
type Chat struct {
	userID   string
	turns    core.TurnHandler
	sessions *state.Sessions
	commands core.CmdRouter
	last     *core.Response
}

func NewChat(userID string, turns core.TurnHandler, sessions *state.Sessions, commands core.CmdRouter) *Chat {
	return &Chat{
		userID:   userID,
		turns:    turns,
		sessions: sessions,
		commands: commands,
	}
}

// Handle processes one input line and returns what to print.
func (c *Chat) Handle(ctx context.Context, line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	if line == "/menu" {
		if c.last == nil {
			return helpText
		}
		return ui.Terminal(*c.last)
	}

	if strings.HasPrefix(line, "/set ") {
		field, value, ok := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "/set ")), "=")
		if !ok || strings.TrimSpace(field) == "" {
			return "Uso: /set campo=valor"
		}
		return c.turn(ctx, core.TurnRequest{UserData: []core.FieldInput{{
			Field: strings.TrimSpace(field),
			Value: strings.TrimSpace(value),
		}}})
	}

	if strings.HasPrefix(line, "/") {
		var (
			out     string
			handled bool
		)
		c.sessions.Update(ctx, c.userID, func(s *core.Session) {
			out, handled = c.commands.Execute(ctx, s, line)
		})
		if handled {
			return out
		}
	}

	if n, err := strconv.Atoi(line); err == nil && c.last != nil {
		choices := ui.Choices(*c.last)
		if n >= 1 && n <= len(choices) {
			return c.turn(ctx, core.TurnRequest{UserData: []core.FieldInput{choices[n-1].Input()}})
		}
	}

	return c.turn(ctx, core.TurnRequest{Message: line})
}

func (c *Chat) turn(ctx context.Context, req core.TurnRequest) string {
	req.UserID = c.userID
	req.ConversationID = c.sessions.Get(ctx, c.userID).ConversationID

	resp, err := c.turns.HandleTurn(ctx, req)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("turn failed")
		return ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
	}

	c.sessions.Update(ctx, c.userID, func(s *core.Session) { s.ConversationID = resp.ConversationID })
	c.last = &resp
	return ui.Terminal(resp)
}
