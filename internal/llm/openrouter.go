package llm

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	minimaxBaseURL    = "https://api.minimax.io/v1"
)

// NewOpenRouterProvider creates a provider for the OpenRouter API (OpenAI-compatible).
func NewOpenRouterProvider(apiKey string, model string) *OpenAIProvider {
	return newCompatProvider("openrouter", apiKey, openRouterBaseURL, model)
}

// NewMinimaxProvider creates a provider for the MiniMax API (OpenAI-compatible).
func NewMinimaxProvider(apiKey string, model string) *OpenAIProvider {
	return newCompatProvider("minimax", apiKey, minimaxBaseURL, model)
}
