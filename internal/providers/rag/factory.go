package rag

import (
	"context"
	"fmt"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/pkg/retry"
	"google.golang.org/genai"
)

func NewEmbeddingModel(ctx context.Context, cfg *config.RAGConfig) (*Embedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding client: %w", err)
	}
	return NewEmbedder(client, cfg.EmbeddingModel, cfg.EmbeddingDimensions, cfg.MaxDocumentTokens, retry.NewDefaultRetrier()), nil
}
