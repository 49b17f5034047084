package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/pkg/log"
)

// RAGConfig drives content embeddings. Embeddings always use Gemini.
type RAGConfig struct {
	APIKey              string `env:"GEMINI_API_KEY,required,notEmpty"`
	EmbeddingModel      string `env:"EMBEDDING_MODEL" envDefault:"gemini-embedding-001"`
	EmbeddingDimensions int32  `env:"EMBEDDING_DIMENSIONS" envDefault:"768"`
	QueryCacheSize      int    `env:"EMBEDDING_CACHE_SIZE" envDefault:"512"`
	MaxDocumentTokens   int    `env:"EMBEDDING_MAX_TOKENS" envDefault:"2000"`
}

func NewRAGConfig(ctx context.Context) *RAGConfig {
	cfg := &RAGConfig{}
	if err := env.Parse(cfg); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse RAG config")
	}
	return cfg
}
