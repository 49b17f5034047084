package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/pkg/log"
)

type Server struct {
	srv *http.Server
}

func NewServer(ctx context.Context, cfg *config.HTTPConfig, deps Deps) *Server {
	return &Server{
		srv: &http.Server{
			Addr: cfg.Addr,
			Handler: NewRouter(ctx, deps, RouterOptions{
				AllowedOrigins: cfg.AllowedOrigins,
				RequestTimeout: cfg.RequestTimeout,
			}),
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("starting http server")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
