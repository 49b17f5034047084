// Package content manages the catalog of educational resources that the
// content search runs against.
package content

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/inbucket/html2text"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

const (
	TypeMED        = "med"
	TypePlaneacion = "planeacion"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

var typePattern = regexp.MustCompile(`^[a-z0-9_-]{1,32}$`)

// Page is one page of catalog items, most recently updated first.
type Page struct {
	Items   []core.ContentItem `json:"items"`
	Total   int                `json:"total"`
	Page    int                `json:"page"`
	Size    int                `json:"size"`
	HasNext bool               `json:"has_next"`
}

type Service struct {
	repo     core.ContentRepository
	embedder core.Embedder
}

func NewService(repo core.ContentRepository, embedder core.Embedder) *Service {
	return &Service{repo: repo, embedder: embedder}
}

// Upsert cleans, embeds and stores item under contentType. An empty id is
// replaced with a fresh uuid. The stored item is returned.
func (s *Service) Upsert(ctx context.Context, contentType string, item core.ContentItem) (core.ContentItem, error) {
	if err := validateType(contentType); err != nil {
		return core.ContentItem{}, err
	}
	item.ContentType = contentType
	item.Title = strings.TrimSpace(item.Title)
	if item.Title == "" {
		return core.ContentItem{}, fmt.Errorf("%w: title is required", core.ErrInvalidInput)
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	item.Description = cleanText(ctx, item.Description)
	item.Tags = normalizeTags(item.Tags)

	vector, err := s.embedder.EmbedDocument(ctx, item.Title, documentText(item))
	if err != nil {
		return core.ContentItem{}, fmt.Errorf("failed to embed %s/%s: %w", contentType, item.ID, err)
	}
	item.Embedding = vector

	if err := s.repo.Upsert(ctx, item); err != nil {
		return core.ContentItem{}, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, contentType, id string) error {
	if err := validateType(contentType); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", core.ErrInvalidInput)
	}
	return s.repo.Delete(ctx, contentType, id)
}

func (s *Service) List(ctx context.Context, contentType string, page, size int) (Page, error) {
	if err := validateType(contentType); err != nil {
		return Page{}, err
	}
	if page < 1 || size < 1 || size > MaxPageSize {
		return Page{}, fmt.Errorf("%w: page must be >= 1 and size between 1 and %d", core.ErrInvalidPagination, MaxPageSize)
	}
	items, total, err := s.repo.List(ctx, contentType, page, size)
	if err != nil {
		return Page{}, err
	}
	return Page{
		Items:   items,
		Total:   total,
		Page:    page,
		Size:    size,
		HasNext: page*size < total,
	}, nil
}

func validateType(contentType string) error {
	if !typePattern.MatchString(contentType) {
		return fmt.Errorf("%w: content type %q", core.ErrInvalidInput, contentType)
	}
	return nil
}

// cleanText strips markup from scraped descriptions. Text that fails to parse
// is kept as is.
func cleanText(ctx context.Context, s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	text, err := html2text.FromString(s, html2text.Options{OmitLinks: true})
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to clean description")
		return s
	}
	return strings.TrimSpace(text)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func documentText(item core.ContentItem) string {
	parts := []string{item.Title}
	if item.Description != "" {
		parts = append(parts, item.Description)
	}
	if len(item.Tags) > 0 {
		parts = append(parts, "Etiquetas: "+strings.Join(item.Tags, ", "))
	}
	if item.Body != "" {
		parts = append(parts, item.Body)
	}
	return strings.Join(parts, "\n\n")
}
