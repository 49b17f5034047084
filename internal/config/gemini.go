package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/pkg/log"
)

type GeminiConfig struct {
	APIKey        string `env:"GEMINI_API_KEY,required,notEmpty"`
	RouterModel   string `env:"GEMINI_ROUTER_MODEL" envDefault:"gemini-2.5-flash"`
	AnalysisModel string `env:"GEMINI_ANALYSIS_MODEL" envDefault:"gemini-2.5-pro"`
}

func NewGeminiConfig(ctx context.Context) *GeminiConfig {
	c := &GeminiConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Gemini config")
	}
	return c
}
