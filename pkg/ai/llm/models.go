package llm

import "context"

// Role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content,omitempty"`
}

// NewSystemMessage creates a new system message
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a new user message
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a new assistant message
func NewAssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Usage represents token usage statistics
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a single chat completion
type Response struct {
	Message Message `json:"message"`
	Usage   Usage   `json:"usage"`
}

// Provider is the minimal chat interface every model backend implements.
type Provider interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// ResponseFormatType represents the format type for model outputs
type ResponseFormatType string

const (
	// JSONObject requests output in JSON object format
	JSONObject ResponseFormatType = "json_object"
	// TextFormat requests output in plain text (default)
	TextFormat ResponseFormatType = "text"
)

// ResponseFormat specifies the desired output format
type ResponseFormat struct {
	Type ResponseFormatType `json:"type"`
}
