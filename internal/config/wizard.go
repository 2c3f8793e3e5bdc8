package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and saves the result
// to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to instructgen! Let's configure dataset generation.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "azure", "openrouter", "minimax", "anthropic", "google", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Model.
	modelPrompt := promptui.Prompt{
		Label:   "Model",
		Default: DefaultModel(cfg.Provider),
	}
	if cfg.Model, err = modelPrompt.Run(); err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Azure deployment details.
	if cfg.Provider == ProviderAzure {
		endpointPrompt := promptui.Prompt{Label: "Azure endpoint (https://<resource>.openai.azure.com)"}
		if cfg.Azure.Endpoint, err = endpointPrompt.Run(); err != nil {
			return nil, fmt.Errorf("azure endpoint: %w", err)
		}
		deploymentPrompt := promptui.Prompt{Label: "Azure deployment name", Default: cfg.Model}
		if cfg.Azure.Deployment, err = deploymentPrompt.Run(); err != nil {
			return nil, fmt.Errorf("azure deployment: %w", err)
		}
	}

	// 4. Output file.
	outputPrompt := promptui.Prompt{
		Label:   "Output JSONL file",
		Default: cfg.Output,
	}
	if cfg.Output, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	// 5. Concurrency.
	concurrencyPrompt := promptui.Prompt{
		Label:    "Concurrent invocations",
		Default:  strconv.Itoa(cfg.MaxConcurrency),
		Validate: validateNonNegativeInt,
	}
	n, err := concurrencyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("concurrency: %w", err)
	}
	cfg.MaxConcurrency, _ = strconv.Atoi(strings.TrimSpace(n))

	// 6. Optional key file.
	keyPrompt := promptui.Prompt{
		Label: "API key file (leave blank to use the environment)",
	}
	if cfg.APIKeyFile, err = keyPrompt.Run(); err != nil {
		return nil, fmt.Errorf("api key file: %w", err)
	}

	if cfg.APIKeyFile == "" {
		if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment before running instructgen generate.\n", envVar)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if n < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}
