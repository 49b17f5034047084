package main

import (
	"encoding/json"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/internal/service/conversation"
	"github.com/spf13/cobra"
)

var (
	messagesPage int
	messagesSize int
)

var messagesCmd = &cobra.Command{
	Use:   "messages <conversation_id>",
	Short: "Print one page of a conversation as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		store, err := initStorage(ctx, config.NewAppConfig(ctx))
		if err != nil {
			return err
		}
		defer store.db.Close()

		page, err := conversation.NewService(store.messages).Messages(ctx, args[0], messagesPage, messagesSize)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	},
}

func init() {
	messagesCmd.Flags().IntVarP(&messagesPage, "page", "p", 1, "page number, starting at 1")
	messagesCmd.Flags().IntVarP(&messagesSize, "size", "s", conversation.DefaultPageSize, "messages per page")
	rootCmd.AddCommand(messagesCmd)
}
