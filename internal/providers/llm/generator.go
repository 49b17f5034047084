package llm

import (
	"context"

	"github.com/sandevgo/mentoria/internal/core"
)

const userAgent = core.MentorUserAgent

// Prompt is a single JSON-mode completion request.
type Prompt struct {
	System string
	User   string
}

// Generator returns the raw model text for a prompt. Implementations wrap
// non-retryable failures with retry.Permanent.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
	Model() string
}

// Sampling parameters shared by every backend. Plans must be near-deterministic.
const (
	temperature = 0.1
	topP        = 0.8
	topK        = 40
)
