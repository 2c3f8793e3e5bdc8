package cmd

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/instructgen/internal/config"
	"github.com/ziadkadry99/instructgen/internal/llm"
	"github.com/ziadkadry99/instructgen/internal/pipeline"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `instructgen init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	pc, err := cfg.ProviderConfig()
	if err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, pc)
}

// createRunner wires the configured provider into a pipeline runner.
func createRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	provider, err := createLLMProviderFromConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating LLM provider: %w", err)
	}
	return pipeline.New(provider, cfg.PipelineConfig(), pipeline.WithLogger(logger))
}
