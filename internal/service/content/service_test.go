package content

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]core.ContentItem
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[string]core.ContentItem)}
}

func (f *fakeRepo) Upsert(_ context.Context, item core.ContentItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.items[item.ContentType+"/"+item.ID] = item
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, contentType, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := contentType + "/" + id
	if _, ok := f.items[key]; !ok {
		return core.ErrNotFound
	}
	delete(f.items, key)
	return nil
}

func (f *fakeRepo) List(_ context.Context, contentType string, page, size int) ([]core.ContentItem, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []core.ContentItem
	for _, item := range f.items {
		if item.ContentType == contentType {
			out = append(out, item)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Nearest(context.Context, []float32, int) ([]core.SearchResult, error) {
	return nil, nil
}

type fakeEmbedder struct {
	mu     sync.Mutex
	texts  []string
	failOn string
}

func (f *fakeEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1}, nil
}

func (f *fakeEmbedder) EmbedDocument(_ context.Context, title, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && title == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	f.texts = append(f.texts, text)
	return []float32{float32(len(text)), 1}, nil
}

func TestService_Upsert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		item        core.ContentItem
		wantErr     error
		check       func(t *testing.T, got core.ContentItem)
	}{
		{
			name:        "mints id and cleans markup",
			contentType: TypeMED,
			item: core.ContentItem{
				Title:       "  Fracciones  ",
				Description: "<p>Material para <b>quinto</b> grado</p>",
				Tags:        []string{"Matemáticas", " matemáticas ", ""},
			},
			check: func(t *testing.T, got core.ContentItem) {
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, "Fracciones", got.Title)
				assert.Equal(t, TypeMED, got.ContentType)
				assert.NotContains(t, got.Description, "<")
				assert.Contains(t, got.Description, "quinto")
				assert.Equal(t, []string{"matemáticas"}, got.Tags)
				assert.NotEmpty(t, got.Embedding)
			},
		},
		{
			name:        "keeps given id",
			contentType: TypePlaneacion,
			item:        core.ContentItem{ID: "p-1", Title: "Planeación semanal"},
			check: func(t *testing.T, got core.ContentItem) {
				assert.Equal(t, "p-1", got.ID)
				assert.Equal(t, []string{}, got.Tags)
			},
		},
		{name: "missing title", contentType: TypeMED, item: core.ContentItem{Title: " "}, wantErr: core.ErrInvalidInput},
		{name: "bad type", contentType: "MEDs!", item: core.ContentItem{Title: "x"}, wantErr: core.ErrInvalidInput},
		{name: "empty type", contentType: "", item: core.ContentItem{Title: "x"}, wantErr: core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			repo := newFakeRepo()
			s := NewService(repo, &fakeEmbedder{})

			got, err := s.Upsert(context.Background(), tt.contentType, tt.item)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.items)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
			assert.Contains(t, repo.items, got.ContentType+"/"+got.ID)
		})
	}
}

func TestService_UpsertEmbedsWholeDocument(t *testing.T) {
	t.Parallel()
	embedder := &fakeEmbedder{}
	s := NewService(newFakeRepo(), embedder)

	_, err := s.Upsert(context.Background(), TypeMED, core.ContentItem{
		Title:       "Ecosistemas",
		Description: "Cadenas alimentarias",
		Tags:        []string{"ciencias"},
		Body:        "Actividad en equipo",
	})
	require.NoError(t, err)
	require.Len(t, embedder.texts, 1)
	assert.Equal(t, "Ecosistemas\n\nCadenas alimentarias\n\nEtiquetas: ciencias\n\nActividad en equipo", embedder.texts[0])
}

func TestService_UpsertFailures(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	s := NewService(repo, &fakeEmbedder{failOn: "x"})
	_, err := s.Upsert(context.Background(), TypeMED, core.ContentItem{Title: "x"})
	require.Error(t, err)
	assert.Empty(t, repo.items)

	errDB := errors.New("disk full")
	repo.err = errDB
	s = NewService(repo, &fakeEmbedder{})
	_, err = s.Upsert(context.Background(), TypeMED, core.ContentItem{Title: "y"})
	assert.ErrorIs(t, err, errDB)
}

func TestService_ListAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := NewService(newFakeRepo(), &fakeEmbedder{})

	for _, title := range []string{"uno", "dos", "tres"} {
		_, err := s.Upsert(ctx, TypeMED, core.ContentItem{ID: title, Title: title})
		require.NoError(t, err)
	}

	page, err := s.List(ctx, TypeMED, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasNext)

	_, err = s.List(ctx, TypeMED, 0, 2)
	assert.ErrorIs(t, err, core.ErrInvalidPagination)
	_, err = s.List(ctx, TypeMED, 1, MaxPageSize+1)
	assert.ErrorIs(t, err, core.ErrInvalidPagination)

	require.NoError(t, s.Delete(ctx, TypeMED, "dos"))
	assert.ErrorIs(t, s.Delete(ctx, TypeMED, "dos"), core.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, TypeMED, ""), core.ErrInvalidInput)

	page, err = s.List(ctx, TypeMED, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasNext)
}

func TestService_Ingest(t *testing.T) {
	t.Parallel()

	const file = `[
		{"id": "m1", "title": "Lectura guiada", "description": "<p>Comprensión</p>", "tags": ["español"]},
		{"id": "p1", "content_type": "planeacion", "title": "Semana 1"},
		{"id": "bad", "title": ""},
		{"title": "Sin id"},
		{"id": "boom", "title": "boom"}
	]`

	repo := newFakeRepo()
	s := NewService(repo, &fakeEmbedder{failOn: "boom"})

	report, err := s.Ingest(context.Background(), strings.NewReader(file), TypeMED, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Stored)
	assert.Len(t, report.Failed, 2)
	assert.ErrorIs(t, report.Failed["bad"], core.ErrInvalidInput)
	assert.Contains(t, report.Failed, "boom")

	assert.Contains(t, repo.items, "med/m1")
	assert.Contains(t, repo.items, "planeacion/p1")
	assert.Equal(t, "Comprensión", repo.items["med/m1"].Description)
}

func TestService_IngestRejectsMalformedFile(t *testing.T) {
	t.Parallel()
	s := NewService(newFakeRepo(), &fakeEmbedder{})
	_, err := s.Ingest(context.Background(), strings.NewReader(`{"not": "an array"}`), TypeMED, 0)
	require.Error(t, err)
}
