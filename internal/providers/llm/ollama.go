package llm

type Ollama struct {
	*OpenAICompatible
}

// NewOllama talks to Ollama's OpenAI-compatible endpoint.
func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			JSONMode:   true,
		}),
	}
}
