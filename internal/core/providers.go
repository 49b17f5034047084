package core

import "context"

// KnowledgeIndex is a reference dictionary keyed by topic.
type KnowledgeIndex map[string]any

// Keys returns the index keys in sorted order.
func (k KnowledgeIndex) Keys() []string {
	return sortedKeys(k)
}

type RouteRequest struct {
	Message string
	Profile UserProfile
	Context ConversationContext
	NEMKeys []string
	SEPKeys []string
}

type AnalyzeRequest struct {
	Message string
	Profile UserProfile
	// Knowledge holds only the entries selected by the routing stage.
	Knowledge KnowledgeIndex
}

// PlanProvider turns a user message into a structured plan.
// A failed call returns an error and no plan.
type PlanProvider interface {
	Route(ctx context.Context, req RouteRequest) (*RoutingPlan, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisPlan, error)
}

type ContentSearcher interface {
	Search(ctx context.Context, query string, k int) ([]SearchResult, error)
}

type Embedder interface {
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	EmbedDocument(ctx context.Context, title, text string) ([]float32, error)
}
