package config

import "github.com/ziadkadry99/instructgen/internal/llm"

// DefaultPath is where init writes the configuration.
const DefaultPath = ".instructgen.yml"

// defaultModels maps each provider to the model the wizard suggests.
var defaultModels = map[ProviderType]string{
	ProviderOpenAI:     "gpt-4o",
	ProviderAzure:      "gpt-4o",
	ProviderOpenRouter: "openai/gpt-4o",
	ProviderMiniMax:    "MiniMax-M2.5",
	ProviderAnthropic:  "claude-sonnet-4-5-20250929",
	ProviderGoogle:     "gemini-2.0-flash",
	ProviderOllama:     "llama3",
}

// DefaultConfig returns a Config with the sampling defaults of the coding
// pipelines.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderOpenAI,
		Model:          "gpt-4o",
		TemperatureMin: 0.3,
		TemperatureMax: 0.7,
		TopP:           0.4,
		MaxTokens:      1024,
		MaxConcurrency: 4,
		Output:         "dataset.jsonl",
		Azure: AzureConfig{
			APIVersion: "2024-06-01",
		},
		Encoding: llm.DefaultEncoding,
	}
}

// DefaultModel returns the suggested model for a provider, falling back to
// the OpenAI default.
func DefaultModel(p ProviderType) string {
	if m, ok := defaultModels[p]; ok {
		return m
	}
	return defaultModels[ProviderOpenAI]
}
