package config

// ProviderType identifies a chat-completion back end.
type ProviderType string

const (
	ProviderOpenAI     ProviderType = "openai"
	ProviderAzure      ProviderType = "azure"
	ProviderOpenRouter ProviderType = "openrouter"
	ProviderMiniMax    ProviderType = "minimax"
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderGoogle     ProviderType = "google"
	ProviderOllama     ProviderType = "ollama"
)

// Config is the top-level instructgen configuration, corresponding to .instructgen.yml.
type Config struct {
	Provider        ProviderType `yaml:"provider" koanf:"provider"`
	Model           string       `yaml:"model" koanf:"model"`
	TemperatureMin  float64      `yaml:"temperature_min" koanf:"temperature_min"`
	TemperatureMax  float64      `yaml:"temperature_max" koanf:"temperature_max"`
	TopP            float64      `yaml:"top_p" koanf:"top_p"`
	MaxTokens       int          `yaml:"max_tokens" koanf:"max_tokens"`
	MaxConcurrency  int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	Output          string       `yaml:"output" koanf:"output"`
	IncludeMetadata bool         `yaml:"include_metadata" koanf:"include_metadata"`
	APIKeyFile      string       `yaml:"api_key_file,omitempty" koanf:"api_key_file"`
	Azure           AzureConfig  `yaml:"azure,omitempty" koanf:"azure"`
	OllamaHost      string       `yaml:"ollama_host,omitempty" koanf:"ollama_host"`
	Encoding        string       `yaml:"encoding" koanf:"encoding"`
}

// AzureConfig describes an Azure OpenAI deployment.
type AzureConfig struct {
	Endpoint   string `yaml:"endpoint,omitempty" koanf:"endpoint"`
	APIKey     string `yaml:"api_key,omitempty" koanf:"api_key"`
	APIVersion string `yaml:"api_version,omitempty" koanf:"api_version"`
	Deployment string `yaml:"deployment,omitempty" koanf:"deployment"`
}
