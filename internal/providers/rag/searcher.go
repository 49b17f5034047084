package rag

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

// VectorIndex is the part of the content store the searcher needs.
type VectorIndex interface {
	Nearest(ctx context.Context, vector []float32, k int) ([]core.SearchResult, error)
}

// Searcher implements core.ContentSearcher. Query embeddings are cached,
// since menu picks send the same phrases over and over.
type Searcher struct {
	embedder core.Embedder
	index    VectorIndex
	cache    *lru.Cache[string, []float32]
}

func NewSearcher(embedder core.Embedder, index VectorIndex, cacheSize int) (*Searcher, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, []float32](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	return &Searcher{embedder: embedder, index: index, cache: cache}, nil
}

func (s *Searcher) Search(ctx context.Context, query string, k int) ([]core.SearchResult, error) {
	key := strings.ToLower(strings.Join(strings.Fields(query), " "))
	if key == "" || k <= 0 {
		return nil, nil
	}

	vector, ok := s.cache.Get(key)
	if !ok {
		var err error
		vector, err = s.embedder.EmbedQuery(ctx, query)
		if err != nil {
			return nil, err
		}
		s.cache.Add(key, vector)
	}

	results, err := s.index.Nearest(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().
		Str("query", query).
		Bool("cached", ok).
		Int("results", len(results)).
		Msg("content search")
	return results, nil
}
