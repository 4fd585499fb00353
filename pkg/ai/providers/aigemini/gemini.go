package aigemini

import (
	"context"
	"os"

	"github.com/Abraxas-365/mailcraft/pkg/ai/llm"
	"google.golang.org/genai"
)

// GeminiProvider implements llm.Provider for Google Gemini
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, WrapError(err, ErrMissingAPIKey).
			WithDetail("error", "failed to create Gemini client")
	}

	return &GeminiProvider{client: client}, nil
}

func defaultChatOptions() *llm.ChatOptions {
	options := llm.DefaultOptions()
	options.Model = "gemini-2.0-flash"
	return options
}

// Chat implements llm.Provider
func (p *GeminiProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := defaultChatOptions()
	for _, opt := range opts {
		opt(options)
	}

	var systemContent *genai.Content
	var contents []*genai.Content
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			systemContent = &genai.Content{
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			}
		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		}
	}

	config := &genai.GenerateContentConfig{}
	if systemContent != nil {
		config.SystemInstruction = systemContent
	}
	if options.Temperature != 0 {
		config.Temperature = genai.Ptr(options.Temperature)
	}
	if options.TopP != 0 {
		config.TopP = genai.Ptr(options.TopP)
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}
	if options.ResponseFormat != nil && options.ResponseFormat.Type == llm.JSONObject {
		config.ResponseMIMEType = "application/json"
	}

	result, err := p.client.Models.GenerateContent(ctx, options.Model, contents, config)
	if err != nil {
		return llm.Response{}, ParseGeminiError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	if result == nil || len(result.Candidates) == 0 {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "no candidates in response")
	}

	var content string
	if candidate := result.Candidates[0]; candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			content += part.Text
		}
	}

	usage := llm.Usage{}
	if result.UsageMetadata != nil {
		usage.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content,
		},
		Usage: usage,
	}, nil
}
