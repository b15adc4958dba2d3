package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic endpoint defaults.
const (
	DefaultAnthropicBaseURL = "https://api.anthropic.com"
	DefaultAnthropicVersion = "2023-06-01"
)

// AnthropicLLM implements the LLM interface using Anthropic's Messages API.
type AnthropicLLM struct {
	client anthropic.Client
	config Config
}

// NewAnthropicLLM creates an Anthropic-backed LLM implementation.
// A missing API key is allowed; the request is then sent without credentials.
func NewAnthropicLLM(config Config) (*AnthropicLLM, error) {
	if config.Model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}
	if config.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: max tokens must be positive", ErrInvalidConfig)
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultAnthropicBaseURL
	}
	if config.APIVersion == "" {
		config.APIVersion = DefaultAnthropicVersion
	}

	opts := []option.RequestOption{
		option.WithBaseURL(config.BaseURL),
		option.WithHeader("anthropic-version", config.APIVersion),
		// one best-effort attempt per generation
		option.WithMaxRetries(0),
	}
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	} else {
		// The client picks up ANTHROPIC_API_KEY on its own; only send what was configured.
		opts = append(opts, option.WithHeaderDel("x-api-key"))
	}
	if config.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(config.HTTPClient))
	}

	return &AnthropicLLM{
		client: anthropic.NewClient(opts...),
		config: config,
	}, nil
}

// Generate sends the prompt as a single user message and returns the text
// of the first content block.
func (a *AnthropicLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.config.Model),
		MaxTokens: int64(a.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if a.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(a.config.Temperature))
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		// The server answered, just not with a message.
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		}
		// Connection failures, cancellation, and bodies that do not decode.
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if len(msg.Content) == 0 || msg.Content[0].Text == "" {
		return "", fmt.Errorf("%w: no content in response", ErrMalformedResponse)
	}

	return msg.Content[0].Text, nil
}
