// Package cli is an interactive terminal chat with the engine.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/chzyer/readline"

	"github.com/sandevgo/mentoria/pkg/log"
)

type ReadLine struct {
	chat *Chat
	rl   *readline.Instance
}

func NewReadLine(chat *Chat, historyFile string) (*ReadLine, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "🍎 > ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{chat: chat, rl: rl}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Debug().Msg("readline chat started")
	fmt.Fprintln(r.rl.Stdout(), helpText)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		if line == "exit" {
			return nil
		}

		if out := r.chat.Handle(ctx, line); out != "" {
			fmt.Fprintln(r.rl.Stdout(), out)
		}
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}

// Run drives the chat until the user exits, for one-shot CLI use.
func (r *ReadLine) Run(ctx context.Context) error {
	defer r.Shutdown(ctx)
	if err := r.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
