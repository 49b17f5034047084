package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/mentoria/internal/core"
)

type HelpCommand struct {
	router    core.CmdRouter
	formatter *ResponseFormatter
}

func NewHelpCommand(router core.CmdRouter) *HelpCommand {
	return &HelpCommand{router: router, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Listar los comandos disponibles"
}

func (c *HelpCommand) Execute(_ context.Context, _ *core.Session, _ []string) (string, error) {
	commands := c.router.ListCommands()
	items := make([]string, 0, len(commands))
	for _, cmd := range commands {
		items = append(items, fmt.Sprintf("**/%s** %s", cmd.Name(), cmd.Description()))
	}
	return c.formatter.Combine(
		c.formatter.Info("Comandos"),
		c.formatter.List(items),
	), nil
}
