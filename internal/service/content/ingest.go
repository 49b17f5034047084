package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sandevgo/mentoria/internal/core"
	"github.com/sandevgo/mentoria/pkg/log"
)

const defaultIngestWorkers = 4

// IngestReport summarizes a bulk load. Failed items are skipped, not fatal.
type IngestReport struct {
	Stored int
	Failed map[string]error
}

type ingestItem struct {
	ID          string   `json:"id"`
	ContentType string   `json:"content_type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	Body        string   `json:"body"`
}

// Ingest loads a JSON array of items from r and upserts them with up to
// workers concurrent embeddings. Items without a content type take
// defaultType.
func (s *Service) Ingest(ctx context.Context, r io.Reader, defaultType string, workers int) (IngestReport, error) {
	var items []ingestItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return IngestReport{}, fmt.Errorf("failed to decode content file: %w", err)
	}
	if workers <= 0 {
		workers = defaultIngestWorkers
	}

	report := IngestReport{Failed: make(map[string]error)}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, in := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			contentType := in.ContentType
			if contentType == "" {
				contentType = defaultType
			}
			stored, err := s.Upsert(gctx, contentType, core.ContentItem{
				ID:          in.ID,
				Title:       in.Title,
				Description: in.Description,
				URL:         in.URL,
				Tags:        in.Tags,
				Body:        in.Body,
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				key := in.ID
				if key == "" {
					key = fmt.Sprintf("#%d", i)
				}
				report.Failed[key] = err
				log.FromCtx(gctx).Warn().Err(err).Str("item", key).Msg("skipping content item")
				return nil
			}
			report.Stored++
			log.FromCtx(gctx).Debug().Str("type", stored.ContentType).Str("id", stored.ID).Msg("content stored")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}
