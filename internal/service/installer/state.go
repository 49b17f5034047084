package installer

// Settings is the subset of configuration the wizard collects. Field tags
// match the env names read by internal/config.
type Settings struct {
	LLMProvider string `env:"LLM_PROVIDER"`

	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`
	OllamaBaseURL    string `env:"OLLAMA_BASE_URL"`
	CustomBaseURL    string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey     string `env:"CUSTOM_OPENAI_API_KEY"`
	CustomModel      string `env:"CUSTOM_OPENAI_MODEL"`

	EnableHTTP         bool   `env:"ENABLE_HTTP"`
	EnableTelegram     bool   `env:"ENABLE_TELEGRAM"`
	TelegramToken      string `env:"TELEGRAM_TOKEN"`
	TelegramAllowedIDs string `env:"TELEGRAM_ALLOWED_IDS"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{
		Settings: Settings{EnableHTTP: true},
	}
}
