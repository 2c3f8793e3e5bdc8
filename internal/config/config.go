package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INSTRUCTGEN_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (INSTRUCTGEN_*). A .env file next to the
// config file is loaded first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// INSTRUCTGEN_MAX_TOKENS -> max_tokens, INSTRUCTGEN_AZURE_ENDPOINT -> azure.endpoint.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "azure_"); ok {
		return "azure." + rest
	}
	return key
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderOpenAI:     true,
	ProviderAzure:      true,
	ProviderOpenRouter: true,
	ProviderMiniMax:    true,
	ProviderAnthropic:  true,
	ProviderGoogle:     true,
	ProviderOllama:     true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of openai, azure, openrouter, minimax, anthropic, google, ollama", c.Provider)
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}

	if c.TemperatureMin < 0 || c.TemperatureMax > 2 {
		return fmt.Errorf("temperature range [%g, %g] must lie within [0, 2]", c.TemperatureMin, c.TemperatureMax)
	}
	if c.TemperatureMin > c.TemperatureMax {
		return fmt.Errorf("temperature_min %g is greater than temperature_max %g", c.TemperatureMin, c.TemperatureMax)
	}

	if c.TopP <= 0 || c.TopP > 1 {
		return fmt.Errorf("top_p must be in (0, 1], got %g", c.TopP)
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive")
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}

	if c.Provider == ProviderAzure {
		if c.Azure.Endpoint == "" {
			return fmt.Errorf("azure.endpoint is required for the azure provider")
		}
		if c.Azure.APIVersion == "" {
			return fmt.Errorf("azure.api_version is required for the azure provider")
		}
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given provider.
func APIKeyEnvVar(provider ProviderType) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAzure:
		return "AZURE_OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderMiniMax:
		return "MINIMAX_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderGoogle:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}

// APIKey returns the key read from api_key_file, trimmed of surrounding
// whitespace. It returns "" when no key file is configured so the provider
// falls back to its environment variable.
func (c *Config) APIKey() (string, error) {
	if c.APIKeyFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.APIKeyFile)
	if err != nil {
		return "", fmt.Errorf("reading api key file: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("api key file %s is empty", c.APIKeyFile)
	}
	return key, nil
}

// ProviderConfig converts the settings into what llm.NewProvider expects.
func (c *Config) ProviderConfig() (llm.ProviderConfig, error) {
	key, err := c.APIKey()
	if err != nil {
		return llm.ProviderConfig{}, err
	}
	return llm.ProviderConfig{
		Type:       string(c.Provider),
		Model:      c.Model,
		APIKey:     key,
		OllamaHost: c.OllamaHost,
		Azure: llm.AzureConfig{
			Endpoint:   c.Azure.Endpoint,
			APIKey:     c.Azure.APIKey,
			APIVersion: c.Azure.APIVersion,
			Deployment: c.Azure.Deployment,
		},
	}, nil
}

// PipelineConfig returns the sampling parameters shared by every call.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Model:     c.Model,
		TempMin:   c.TemperatureMin,
		TempMax:   c.TemperatureMax,
		TopP:      c.TopP,
		MaxTokens: c.MaxTokens,
	}
}
