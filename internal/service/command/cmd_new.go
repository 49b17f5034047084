package command

import (
	"context"

	"github.com/sandevgo/mentoria/internal/core"
)

// NewCommand drops the current conversation so the next message opens a
// fresh one.
type NewCommand struct {
	formatter *ResponseFormatter
}

func NewNewCommand() *NewCommand {
	return &NewCommand{formatter: NewResponseFormatter()}
}

func (c *NewCommand) Name() string {
	return "new"
}

func (c *NewCommand) Description() string {
	return "Iniciar una conversación nueva"
}

func (c *NewCommand) Execute(_ context.Context, session *core.Session, _ []string) (string, error) {
	session.ConversationID = ""
	return c.formatter.Combine(
		c.formatter.Success("Conversación nueva"),
		c.formatter.Tip("escribe cualquier mensaje para ver el menú de bienvenida"),
	), nil
}
