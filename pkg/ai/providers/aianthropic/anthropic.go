package aianthropic

import (
	"context"
	"os"

	"github.com/Abraxas-365/mailcraft/pkg/ai/llm"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements llm.Provider for Anthropic Claude
type AnthropicProvider struct {
	client anthropic.Client
	apiKey string
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey string, opts ...option.RequestOption) *AnthropicProvider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(options...)

	return &AnthropicProvider{
		client: client,
		apiKey: apiKey,
	}
}

func defaultChatOptions() *llm.ChatOptions {
	options := llm.DefaultOptions()
	options.Model = "claude-sonnet-4-20250514"
	return options
}

// Chat implements llm.Provider
func (p *AnthropicProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := defaultChatOptions()
	for _, opt := range opts {
		opt(options)
	}

	// System prompts travel in a dedicated params field, not the message list
	var systemBlocks []anthropic.TextBlockParam
	var anthropicMsgs []anthropic.MessageParam
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			systemBlocks = append(systemBlocks, anthropic.TextBlockParam{Text: msg.Content})
		case llm.RoleAssistant:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			anthropicMsgs = append(anthropicMsgs,
				anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}

	maxTokens := int64(4096)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(options.Model),
		MaxTokens: maxTokens,
		Messages:  anthropicMsgs,
	}

	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if options.Temperature != 0 {
		params.Temperature = anthropic.Float(float64(options.Temperature))
	}
	if options.TopP != 0 {
		params.TopP = anthropic.Float(float64(options.TopP))
	}
	if len(options.Stop) > 0 {
		params.StopSequences = options.Stop
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseAnthropicError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	var content string
	for _, block := range message.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content,
		},
		Usage: llm.Usage{
			PromptTokens:     int(message.Usage.InputTokens),
			CompletionTokens: int(message.Usage.OutputTokens),
			TotalTokens:      int(message.Usage.InputTokens) + int(message.Usage.OutputTokens),
		},
	}, nil
}
