package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Choice is one candidate completion returned by a provider.
type Choice struct {
	Content      string
	FinishReason string
}

// CompletionResponse contains the result of an LLM completion request.
// Choices keeps the order the provider returned them in.
type CompletionResponse struct {
	Choices      []Choice
	InputTokens  int
	OutputTokens int
	Model        string
}

// FirstContent returns the text of the first choice and false when the
// response carries no choices.
func (r *CompletionResponse) FirstContent() (string, bool) {
	if r == nil || len(r.Choices) == 0 {
		return "", false
	}
	return r.Choices[0].Content, true
}
