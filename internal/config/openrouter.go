package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/pkg/log"
)

type OpenRouterConfig struct {
	APIKey        string `env:"OPENROUTER_API_KEY,required,notEmpty"`
	Model         string `env:"OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash"`
	AnalysisModel string `env:"OPENROUTER_ANALYSIS_MODEL" envDefault:"google/gemini-2.5-pro"`
}

func NewOpenRouterConfig(ctx context.Context) *OpenRouterConfig {
	c := &OpenRouterConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenRouter config")
	}
	return c
}
