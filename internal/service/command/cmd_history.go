package command

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sandevgo/mentoria/internal/core"
)

const historyPageSize = 8

type HistoryReader interface {
	Messages(ctx context.Context, conversationID string, page, size int) (core.MessagePage, error)
}

type HistoryCommand struct {
	history   HistoryReader
	formatter *ResponseFormatter
}

func NewHistoryCommand(history HistoryReader) *HistoryCommand {
	return &HistoryCommand{history: history, formatter: NewResponseFormatter()}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "Mostrar los mensajes recientes"
}

func (c *HistoryCommand) Execute(ctx context.Context, session *core.Session, args []string) (string, error) {
	if session.ConversationID == "" {
		return c.formatter.Combine(
			c.formatter.Info("Historial"),
			"Aún no hay mensajes en esta conversación.\n",
		), nil
	}

	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return c.formatter.Usage("/history [página]"), nil
		}
		page = n
	}

	res, err := c.history.Messages(ctx, session.ConversationID, page, historyPageSize)
	if err != nil {
		return "", err
	}
	if len(res.Messages) == 0 {
		return c.formatter.Combine(
			c.formatter.Info("Historial"),
			"No hay mensajes en esta página.\n",
		), nil
	}

	lines := make([]string, 0, len(res.Messages))
	// oldest first reads naturally in a chat
	for i := len(res.Messages) - 1; i >= 0; i-- {
		m := res.Messages[i]
		who := "Tú"
		if m.IsAgent {
			who = "MentorIA"
		}
		lines = append(lines, fmt.Sprintf("`%s` **%s**: %s", m.CreatedAt.Local().Format("15:04"), who, m.Content))
	}

	sections := []string{
		c.formatter.Info(fmt.Sprintf("Historial (página %d, %d mensajes)", res.Page, res.Total)),
		c.formatter.List(lines),
	}
	if res.HasNext {
		sections = append(sections, c.formatter.Tip(fmt.Sprintf("/history %d para ver mensajes anteriores", res.Page+1)))
	}
	return c.formatter.Combine(sections...), nil
}
