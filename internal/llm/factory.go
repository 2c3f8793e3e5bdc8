package llm

import (
	"context"
	"fmt"
	"os"
)

// ProviderConfig carries everything NewProvider needs to build a client.
// APIKey wins over the provider's conventional environment variable.
type ProviderConfig struct {
	Type       string
	Model      string
	APIKey     string
	OllamaHost string
	Azure      AzureConfig
}

// NewProvider creates a new LLM provider based on the given provider type and model.
// Supported provider types: "openai", "azure", "openrouter", "minimax",
// "anthropic", "google", "ollama".
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Type {
	case "openai":
		apiKey, err := resolveKey(cfg.APIKey, "OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewOpenAIProvider(apiKey, cfg.Model), nil

	case "azure":
		az := cfg.Azure
		if az.APIKey == "" {
			az.APIKey = cfg.APIKey
		}
		apiKey, err := resolveKey(az.APIKey, "AZURE_OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		az.APIKey = apiKey
		if az.Endpoint == "" {
			return nil, fmt.Errorf("azure endpoint is not configured")
		}
		return NewAzureProvider(az, cfg.Model), nil

	case "openrouter":
		apiKey, err := resolveKey(cfg.APIKey, "OPENROUTER_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewOpenRouterProvider(apiKey, cfg.Model), nil

	case "minimax":
		apiKey, err := resolveKey(cfg.APIKey, "MINIMAX_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewMinimaxProvider(apiKey, cfg.Model), nil

	case "anthropic":
		apiKey, err := resolveKey(cfg.APIKey, "ANTHROPIC_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewAnthropicProvider(apiKey, cfg.Model), nil

	case "google":
		apiKey, err := resolveKey(cfg.APIKey, "GOOGLE_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewGoogleProvider(ctx, apiKey, cfg.Model)

	case "ollama":
		host := cfg.OllamaHost
		if host == "" {
			host = os.Getenv("OLLAMA_HOST")
		}
		return NewOllamaProvider(host, cfg.Model)

	default:
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Type)
	}
}

func resolveKey(explicit, envVar string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%s environment variable is not set", envVar)
}
