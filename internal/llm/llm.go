// Package llm provides text generation for T6 posts.
// It defines a provider-agnostic LLM interface with concrete implementations for the
// Anthropic Messages API and OpenAI chat completions, plus a deterministic mock for
// testing. Callers distinguish failures with errors.Is against the sentinel errors
// below.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport means the request never produced a usable response
	// (connection failure, cancelled context, unreadable body).
	ErrTransport = errors.New("LLM transport failed")

	// ErrMalformedResponse means the provider answered but the payload
	// did not carry generated content.
	ErrMalformedResponse = errors.New("LLM response missing content")

	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

// LLM defines the interface for interacting with language models.
// Implementations must be stateless and thread-safe.
type LLM interface {
	// Generate sends prompt as the sole user message and returns the generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds common configuration options for LLM providers.
type Config struct {
	// Provider selects the implementation (anthropic, openai, mock)
	Provider string

	// Model specifies the model identifier
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls randomness (0 = provider default)
	Temperature float32

	// APIKey is the authentication key for the provider. Empty means no
	// credential header is sent.
	APIKey string

	// BaseURL overrides the provider endpoint root
	BaseURL string

	// APIVersion is the anthropic-version header value
	APIVersion string

	// HTTPClient is used for outbound calls; nil means the SDK default
	HTTPClient *http.Client
}

// DefaultConfig returns the Anthropic settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Model:      "claude-sonnet-4-20250514",
		MaxTokens:  1000,
		BaseURL:    DefaultAnthropicBaseURL,
		APIVersion: DefaultAnthropicVersion,
	}
}

// New builds the LLM selected by config.Provider.
func New(config Config) (LLM, error) {
	switch config.Provider {
	case ProviderAnthropic, "":
		return NewAnthropicLLM(config)
	case ProviderOpenAI:
		return NewOpenAILLM(config)
	case ProviderMock:
		return &MockLLM{}, nil
	default:
		return nil, fmt.Errorf("%w: provider %q not supported", ErrInvalidConfig, config.Provider)
	}
}
