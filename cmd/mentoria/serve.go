package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/internal/transport/http"
	"github.com/sandevgo/mentoria/internal/transport/telegram"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/sandevgo/mentoria/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the Telegram bot",
	Long:  `Starts every enabled transport (ENABLE_HTTP, ENABLE_TELEGRAM) and waits for a shutdown signal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting mentoria")

		eng := newEngine(ctx)
		services := append([]srv.Service{}, eng.cleanup...)

		transports, err := initTransports(ctx, eng)
		if err != nil {
			eng.Close(context.WithoutCancel(ctx))
			logger.Fatal().Err(err).Msg("failed to initialize transports")
		}
		services = append(services, transports...)

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("mentoria has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func initTransports(ctx context.Context, eng *engine) ([]srv.Service, error) {
	logger := log.FromCtx(ctx)
	var services []srv.Service

	if eng.cfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		services = append(services, http.NewServer(ctx, httpCfg, http.Deps{
			Turns:         eng.agent,
			Conversations: eng.conversations,
			Content:       eng.content,
		}))
	}

	if eng.cfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, eng.agent, eng.sessions, eng.commands)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if len(services) == 0 {
		logger.Warn().Msg("no transport enabled, set ENABLE_HTTP or ENABLE_TELEGRAM")
	}
	return services, nil
}
