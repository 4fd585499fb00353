package llm

// ChatOptions holds the tunable parameters of a chat call
type ChatOptions struct {
	Model          string
	Temperature    float32
	TopP           float32
	MaxTokens      int
	Stop           []string
	Seed           int64
	ResponseFormat *ResponseFormat
}

// DefaultOptions returns the default chat options
func DefaultOptions() *ChatOptions {
	return &ChatOptions{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Option is a functional option for chat calls
type Option func(*ChatOptions)

// WithModel sets the model identifier
func WithModel(model string) Option {
	return func(o *ChatOptions) {
		o.Model = model
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float32) Option {
	return func(o *ChatOptions) {
		o.Temperature = temperature
	}
}

// WithTopP sets nucleus sampling
func WithTopP(topP float32) Option {
	return func(o *ChatOptions) {
		o.TopP = topP
	}
}

// WithMaxTokens sets the completion token limit
func WithMaxTokens(maxTokens int) Option {
	return func(o *ChatOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithStop sets stop sequences
func WithStop(stop ...string) Option {
	return func(o *ChatOptions) {
		o.Stop = stop
	}
}

// WithSeed sets a deterministic sampling seed where supported
func WithSeed(seed int64) Option {
	return func(o *ChatOptions) {
		o.Seed = seed
	}
}

// WithJSONResponseFormat sets the response format to JSON object
func WithJSONResponseFormat() Option {
	return func(o *ChatOptions) {
		o.ResponseFormat = &ResponseFormat{Type: JSONObject}
	}
}
