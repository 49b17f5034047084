package core

import "time"

// ContentItem is a searchable educational resource (MED, planeación, ...).
type ContentItem struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Body        string    `json:"body,omitempty"`
	Embedding   []float32 `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SearchResult is one nearest-neighbour hit. Lower distance is closer.
type SearchResult struct {
	Item     ContentItem
	Distance float64
}
