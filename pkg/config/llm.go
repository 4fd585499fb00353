package config

import "time"

// LLMConfig configures the language-model provider behind generation.
type LLMConfig struct {
	Provider    string // openai | anthropic | gemini
	Model       string // empty uses the provider default
	MaxAttempts int
	Timeout     time.Duration

	OpenAIAPIKey    string
	AnthropicAPIKey string
	GeminiAPIKey    string
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:        getEnv("LLM_PROVIDER", "openai"),
		Model:           getEnv("LLM_MODEL", ""),
		MaxAttempts:     getEnvInt("LLM_MAX_ATTEMPTS", 3),
		Timeout:         getEnvDuration("LLM_TIMEOUT", 90*time.Second),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
	}
}
