package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/mentoria/internal/config"
	"github.com/sandevgo/mentoria/pkg/log"
	"github.com/sandevgo/mentoria/pkg/retry"
)

// NewPlanProvider builds the planner for the configured LLM provider.
func NewPlanProvider(ctx context.Context, cfg *config.AppConfig) (*Planner, error) {
	router, analyst, err := newGenerators(ctx, cfg.LLMProvider)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("router_model", router.Model()).
		Str("analysis_model", analyst.Model()).
		Msg("starting llm provider")

	return NewPlanner(router, analyst, retry.NewDefaultRetrier()), nil
}

func newGenerators(ctx context.Context, provider string) (Generator, Generator, error) {
	switch provider {
	case "gemini":
		c := config.NewGeminiConfig(ctx)
		client, err := NewGeminiClient(ctx, c.APIKey)
		if err != nil {
			return nil, nil, err
		}
		return NewGemini(client, c.RouterModel), NewGemini(client, c.AnalysisModel), nil
	case "openai":
		c := config.NewOpenAIConfig(ctx)
		return NewOpenAI(c.APIKey, c.Model), NewOpenAI(c.APIKey, orDefault(c.AnalysisModel, c.Model)), nil
	case "openrouter":
		c := config.NewOpenRouterConfig(ctx)
		return NewOpenRouter(c.APIKey, c.Model), NewOpenRouter(c.APIKey, orDefault(c.AnalysisModel, c.Model)), nil
	case "ollama":
		c := config.NewOllamaConfig(ctx)
		return NewOllama(c.BaseURL, c.APIKey, c.Model), NewOllama(c.BaseURL, c.APIKey, orDefault(c.AnalysisModel, c.Model)), nil
	case "custom":
		c := config.NewCustomOpenAIConfig(ctx)
		return NewCustomOpenAI(c.BaseURL, c.APIKey, c.Model), NewCustomOpenAI(c.BaseURL, c.APIKey, orDefault(c.AnalysisModel, c.Model)), nil
	default:
		return nil, nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
