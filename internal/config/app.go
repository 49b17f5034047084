package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

type AppConfig struct {
	// Resolved from MENTORIA_RUNTIME_PATH by GetRuntimePath.
	RuntimePath string `env:"-"`

	// gemini | openai | openrouter | ollama | custom
	LLMProvider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	// Transport Flags
	EnableHTTP     bool `env:"ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"ENABLE_TELEGRAM" envDefault:"false"`

	// Conversation limits
	MaxMessagesPerConversation int `env:"MAX_MESSAGES_PER_CONVERSATION" envDefault:"20"`
	MaxHistoryContext          int `env:"MAX_HISTORY_CONTEXT" envDefault:"8"`
	SearchNeighbors            int `env:"SEARCH_NEIGHBORS" envDefault:"5"`

	// Knowledge index files, JSON or YAML. Empty means <runtime>/knowledge/<name>.json.
	NEMKnowledgePath string `env:"NEM_KNOWLEDGE_PATH"`
	SEPKnowledgePath string `env:"SEP_KNOWLEDGE_PATH"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	c.RuntimePath = GetRuntimePath()
	return c
}

func (c AppConfig) Limits() core.Limits {
	return core.Limits{
		MaxMessagesPerConversation: c.MaxMessagesPerConversation,
		MaxHistoryContext:          c.MaxHistoryContext,
		SearchNeighbors:            c.SearchNeighbors,
	}
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "mentoria.db")
}

func (c AppConfig) GetNEMPath() string {
	if c.NEMKnowledgePath != "" {
		return c.NEMKnowledgePath
	}
	return filepath.Join(c.RuntimePath, "knowledge", "nem.json")
}

func (c AppConfig) GetSEPPath() string {
	if c.SEPKnowledgePath != "" {
		return c.SEPKnowledgePath
	}
	return filepath.Join(c.RuntimePath, "knowledge", "sep.json")
}

func (c AppConfig) GetHistoryFilePath() string {
	return filepath.Join(c.RuntimePath, "chat_history")
}
