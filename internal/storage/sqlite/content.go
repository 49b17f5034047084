package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/mentoria/internal/core"
)

type ContentRepo struct {
	db *sql.DB
}

func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{db: db}
}

// Upsert stores the item keyed by (content type, id). A nil embedding keeps
// the previously stored one.
func (r *ContentRepo) Upsert(ctx context.Context, item core.ContentItem) error {
	tags, err := marshalJSON(nonNilTags(item.Tags))
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	// nil binds as NULL
	var embedding any
	if len(item.Embedding) > 0 {
		blob, err := serializeVector(item.Embedding)
		if err != nil {
			return err
		}
		embedding = blob
	}

	now := time.Now()
	created := item.CreatedAt
	if created.IsZero() {
		created = now
	}

	query := `
		INSERT INTO content_items (content_type, id, title, description, url, tags, body, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(content_type, id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			url = excluded.url,
			tags = excluded.tags,
			body = excluded.body,
			embedding = COALESCE(excluded.embedding, content_items.embedding),
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		item.ContentType, item.ID, item.Title, item.Description, item.URL, tags, item.Body, embedding,
		toMillis(created), toMillis(now),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert content: %w", err)
	}
	return nil
}

func (r *ContentRepo) Delete(ctx context.Context, contentType, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM content_items WHERE content_type = ? AND id = ?`, contentType, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// List returns one page of items of a type, most recently updated first,
// along with the total count for that type.
func (r *ContentRepo) List(ctx context.Context, contentType string, page, size int) ([]core.ContentItem, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_items WHERE content_type = ?`, contentType,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count content: %w", err)
	}

	query := `
		SELECT content_type, id, title, description, url, tags, body, created_at, updated_at
		FROM content_items
		WHERE content_type = ?
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, query, contentType, size, offset(page, size))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query content: %w", err)
	}
	defer rows.Close()

	items := []core.ContentItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Nearest returns the k items closest to vector by cosine distance. Items
// embedded with a different dimension are skipped.
func (r *ContentRepo) Nearest(ctx context.Context, vector []float32, k int) ([]core.SearchResult, error) {
	blob, err := serializeVector(vector)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT content_type, id, title, description, url, tags, body, created_at, updated_at,
			vec_distance_cosine(embedding, ?) AS distance
		FROM content_items
		WHERE embedding IS NOT NULL AND vec_length(embedding) = ?
		ORDER BY distance
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, blob, len(vector), k)
	if err != nil {
		return nil, fmt.Errorf("content search failed: %w", err)
	}
	defer rows.Close()

	var results []core.SearchResult
	for rows.Next() {
		var res core.SearchResult
		item, err := scanItem(rows, &res.Distance)
		if err != nil {
			return nil, err
		}
		res.Item = item
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanItem(rows *sql.Rows, extra ...any) (core.ContentItem, error) {
	var (
		item             core.ContentItem
		tags             string
		created, updated int64
	)
	dest := []any{
		&item.ContentType, &item.ID, &item.Title, &item.Description, &item.URL,
		&tags, &item.Body, &created, &updated,
	}
	if err := rows.Scan(append(dest, extra...)...); err != nil {
		return core.ContentItem{}, fmt.Errorf("failed to scan content: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return core.ContentItem{}, fmt.Errorf("failed to decode tags: %w", err)
	}
	item.CreatedAt = fromMillis(created)
	item.UpdatedAt = fromMillis(updated)
	return item, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
