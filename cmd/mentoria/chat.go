package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/mentoria/internal/transport/cli"
	"github.com/spf13/cobra"
)

var chatUser string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to MentorIA from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		eng := newEngine(ctx)
		defer eng.Close(context.WithoutCancel(ctx))

		chat := cli.NewChat(chatUser, eng.agent, eng.sessions, eng.commands)
		rl, err := cli.NewReadLine(chat, eng.cfg.GetHistoryFilePath())
		if err != nil {
			return err
		}
		return rl.Run(ctx)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatUser, "user", "u", "cli-local", "user id the conversation belongs to")
	rootCmd.AddCommand(chatCmd)
}
