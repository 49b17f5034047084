// Package http exposes the turn engine and its read models over a JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/internal/service/content"
)

type ConversationReader interface {
	Messages(ctx context.Context, conversationID string, page, size int) (core.MessagePage, error)
	Latest(ctx context.Context, userID string) (string, error)
	Info(ctx context.Context, conversationID string) (core.ConversationInfo, error)
}

type ContentCatalog interface {
	List(ctx context.Context, contentType string, page, size int) (content.Page, error)
	Upsert(ctx context.Context, contentType string, item core.ContentItem) (core.ContentItem, error)
	Delete(ctx context.Context, contentType, id string) error
}

// Deps are the services behind the API. Content may be nil when no
// embedding backend is configured.
type Deps struct {
	Turns         core.TurnHandler
	Conversations ConversationReader
	Content       ContentCatalog
}

type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func NewRouter(ctx context.Context, deps Deps, opts RouterOptions) http.Handler {
	h := &handlers{deps: deps}
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(withLogger(ctx))
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chimw.Timeout(opts.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)
	r.Post("/chat", h.chat)

	r.Route("/conversations/{conversationID}", func(r chi.Router) {
		r.Get("/", h.conversationInfo)
		r.Get("/messages", h.messages)
	})
	r.Get("/users/{userID}/latest-conversation", h.latestConversation)

	r.Route("/content/{contentType}", func(r chi.Router) {
		r.Use(h.requireContent)
		r.Get("/", h.listContent)
		r.Post("/", h.createContent)
		r.Put("/{id}", h.updateContent)
		r.Delete("/{id}", h.deleteContent)
	})

	return r
}
