package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/internal/providers/llm"
	"github.com/sandevgo/mentoria/internal/providers/rag"
	"github.com/sandevgo/mentoria/internal/service/agent"
	"github.com/sandevgo/mentoria/internal/service/command"
	"github.com/sandevgo/mentoria/internal/service/content"
	"github.com/sandevgo/mentoria/internal/service/conversation"
	"github.com/sandevgo/mentoria/internal/service/state"
	"github.com/sandevgo/mentoria/internal/storage/sqlite"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/sandevgo/mentoria/pkg/srv"
)

// storage bundles the database handle with its repositories.
type storage struct {
	db       *sql.DB
	profiles *sqlite.ProfilesRepo
	contexts *sqlite.ContextsRepo
	messages *sqlite.MessagesRepo
	content  *sqlite.ContentRepo
}

// engine is everything a transport needs to serve turns.
type engine struct {
	cfg           *config.AppConfig
	agent         *agent.Agent
	conversations *conversation.Service
	content       *content.Service
	sessions      *state.Sessions
	commands      *command.Router
	// cleanup for resources opened while wiring; run in reverse.
	cleanup []srv.Service
}

func newEngine(ctx context.Context) *engine {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	ragCfg := config.NewRAGConfig(ctx)

	// 2. Storage
	store, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}

	// 3. Knowledge indices
	knowledge := config.LoadKnowledge(ctx, appCfg.GetNEMPath(), appCfg.GetSEPPath())

	// 4. LLM planner
	planner, err := llm.NewPlanProvider(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
	}

	// 5. Embeddings and content search
	embedder, err := rag.NewEmbeddingModel(ctx, ragCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedding model")
	}
	searcher, err := rag.NewSearcher(embedder, store.content, ragCfg.QueryCacheSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize content searcher")
	}

	// 6. Engine
	ag := agent.NewAgent(
		appCfg.Limits(),
		knowledge,
		agent.Stores{
			Profiles: store.profiles,
			Contexts: store.contexts,
			Messages: store.messages,
		},
		planner,
		searcher,
	)

	conversations := conversation.NewService(store.messages)

	return &engine{
		cfg:           appCfg,
		agent:         ag,
		conversations: conversations,
		content:       content.NewService(store.content, embedder),
		sessions:      state.NewSessions(conversations),
		commands:      command.NewRouter(conversations, store.profiles),
		cleanup:       []srv.Service{srv.NewCleanup("database", store.db.Close)},
	}
}

// Close releases what newEngine opened, for commands that do not run services.
func (e *engine) Close(ctx context.Context) {
	srv.StopServices(ctx, e.cleanup)
}

// newCatalog wires only the content catalog, which needs storage and
// embeddings but no planner.
func newCatalog(ctx context.Context) (*content.Service, func() error, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, nil, err
	}
	store, err := initStorage(ctx, config.NewAppConfig(ctx))
	if err != nil {
		return nil, nil, err
	}
	embedder, err := rag.NewEmbeddingModel(ctx, config.NewRAGConfig(ctx))
	if err != nil {
		store.db.Close()
		return nil, nil, err
	}
	return content.NewService(store.content, embedder), store.db.Close, nil
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*storage, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}
	return &storage{
		db:       db,
		profiles: sqlite.NewProfilesRepo(db),
		contexts: sqlite.NewContextsRepo(db),
		messages: sqlite.NewMessagesRepo(db),
		content:  sqlite.NewContentRepo(db),
	}, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, config.EnvFileName)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
