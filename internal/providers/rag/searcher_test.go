package rag

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	mu      sync.Mutex
	queries []string
	err     error
}

func (f *fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (f *fakeEmbedder) EmbedDocument(context.Context, string, string) ([]float32, error) {
	return nil, errors.New("not used")
}

type fakeIndex struct {
	results []core.SearchResult
	err     error
	vectors [][]float32
	ks      []int
}

func (f *fakeIndex) Nearest(_ context.Context, vector []float32, k int) ([]core.SearchResult, error) {
	f.vectors = append(f.vectors, vector)
	f.ks = append(f.ks, k)
	return f.results, f.err
}

func TestSearcher_Search(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	emb := &fakeEmbedder{}
	idx := &fakeIndex{results: []core.SearchResult{{Item: core.ContentItem{ID: "a"}, Distance: 0.1}}}
	s, err := NewSearcher(emb, idx, 8)
	require.NoError(t, err)

	got, err := s.Search(ctx, "Planeaciones  de fracciones", 5)
	require.NoError(t, err)
	assert.Equal(t, idx.results, got)

	_, err = s.Search(ctx, "planeaciones de   FRACCIONES", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"Planeaciones  de fracciones"}, emb.queries)
	assert.Equal(t, []int{5, 3}, idx.ks)
	assert.Equal(t, idx.vectors[0], idx.vectors[1])
}

func TestSearcher_Failures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blank query", func(t *testing.T) {
		t.Parallel()
		emb := &fakeEmbedder{}
		s, err := NewSearcher(emb, &fakeIndex{}, 1)
		require.NoError(t, err)

		got, err := s.Search(ctx, "   ", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Empty(t, emb.queries)
	})

	t.Run("embedding error is not cached", func(t *testing.T) {
		t.Parallel()
		emb := &fakeEmbedder{err: errors.New("quota")}
		s, err := NewSearcher(emb, &fakeIndex{}, 4)
		require.NoError(t, err)

		_, err = s.Search(ctx, "meds", 5)
		require.Error(t, err)
		_, err = s.Search(ctx, "meds", 5)
		require.Error(t, err)
		assert.Len(t, emb.queries, 2)
	})

	t.Run("index error", func(t *testing.T) {
		t.Parallel()
		s, err := NewSearcher(&fakeEmbedder{}, &fakeIndex{err: errors.New("locked")}, 4)
		require.NoError(t, err)

		_, err = s.Search(ctx, "meds", 5)
		assert.EqualError(t, err, "locked")
	})
}
