package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mentoria/pkg/log"
)

type OpenAIConfig struct {
	APIKey        string `env:"OPENAI_API_KEY,required,notEmpty"`
	Model         string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	AnalysisModel string `env:"OPENAI_ANALYSIS_MODEL" envDefault:"gpt-4o"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}

type OllamaConfig struct {
	BaseURL       string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	APIKey        string `env:"OLLAMA_API_KEY"`
	Model         string `env:"OLLAMA_MODEL" envDefault:"llama3.1"`
	AnalysisModel string `env:"OLLAMA_ANALYSIS_MODEL"`
}

func NewOllamaConfig(ctx context.Context) *OllamaConfig {
	c := &OllamaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Ollama config")
	}
	return c
}

// CustomOpenAIConfig points at any OpenAI-compatible endpoint.
type CustomOpenAIConfig struct {
	BaseURL       string `env:"CUSTOM_OPENAI_BASE_URL,required,notEmpty"`
	APIKey        string `env:"CUSTOM_OPENAI_API_KEY"`
	Model         string `env:"CUSTOM_OPENAI_MODEL,required,notEmpty"`
	AnalysisModel string `env:"CUSTOM_OPENAI_ANALYSIS_MODEL"`
}

func NewCustomOpenAIConfig(ctx context.Context) *CustomOpenAIConfig {
	c := &CustomOpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse custom OpenAI config")
	}
	return c
}
