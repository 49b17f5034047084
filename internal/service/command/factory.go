package command

import (
	"github.com/sandevgo/mentoria/internal/core"
)

// NewRouter builds the slash command set shared by the chat transports.
func NewRouter(history HistoryReader, profiles core.ProfileRepository) *Router {
	r := New([]core.Command{
		NewNewCommand(),
		NewHistoryCommand(history),
		NewProfileCommand(profiles),
	})
	help := NewHelpCommand(r)
	r.commands[help.Name()] = help
	return r
}
