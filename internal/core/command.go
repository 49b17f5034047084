package core

import "context"

// Session identifies who issued a slash command and in which conversation.
type Session struct {
	UserID         string
	ConversationID string
}

type CmdRouter interface {
	Execute(ctx context.Context, session *Session, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, session *Session, args []string) (string, error)
}

// TurnHandler runs one conversational turn. Implemented by agent.Agent.
type TurnHandler interface {
	HandleTurn(ctx context.Context, req TurnRequest) (Response, error)
}
