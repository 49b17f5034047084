package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/internal/transport/mcp"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MentorIA as MCP tools over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// stdout carries the protocol
		var flushLog func()
		ctx, flushLog = log.NewContextWithWriter(ctx, debug || config.IsDebug(), os.Stderr)
		defer flushLog()

		eng := newEngine(ctx)
		defer eng.Close(context.WithoutCancel(ctx))

		log.FromCtx(ctx).Info().Msg("serving mcp on stdio")
		return mcp.NewServer(eng.agent, eng.conversations).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
