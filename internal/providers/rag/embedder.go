package rag

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/sandevgo/mentoria/pkg/retry"
	"google.golang.org/genai"
)

const (
	taskQuery    = "RETRIEVAL_QUERY"
	taskDocument = "RETRIEVAL_DOCUMENT"
)

// Embedder produces asymmetric query/document embeddings with Gemini.
type Embedder struct {
	client    *genai.Client
	model     string
	dims      int32
	maxTokens int
	retrier   *retry.Retrier
}

func NewEmbedder(client *genai.Client, model string, dims int32, maxTokens int, retrier *retry.Retrier) *Embedder {
	return &Embedder{
		client:    client,
		model:     model,
		dims:      dims,
		maxTokens: maxTokens,
		retrier:   retrier,
	}
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.embed(ctx, text, &genai.EmbedContentConfig{TaskType: taskQuery})
}

// EmbedDocument embeds a catalog entry. Long text is truncated to the token budget.
func (e *Embedder) EmbedDocument(ctx context.Context, title, text string) ([]float32, error) {
	truncated := Truncate(text, e.maxTokens)
	if len(truncated) < len(text) {
		log.FromCtx(ctx).Debug().Str("title", title).Msg("document truncated before embedding")
	}
	return e.embed(ctx, truncated, &genai.EmbedContentConfig{TaskType: taskDocument, Title: title})
}

func (e *Embedder) embed(ctx context.Context, text string, cfg *genai.EmbedContentConfig) ([]float32, error) {
	if text == "" {
		return nil, errors.New("nothing to embed")
	}
	if e.dims > 0 {
		cfg.OutputDimensionality = genai.Ptr(e.dims)
	}

	var values []float32
	err := e.retrier.Do(ctx, func() error {
		res, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), cfg)
		if err != nil {
			return err
		}
		if len(res.Embeddings) == 0 || len(res.Embeddings[0].Values) == 0 {
			return retry.Permanent(errors.New("empty embedding"))
		}
		values = res.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	return values, nil
}
