// Package config handles t6post configuration: an optional YAML file,
// environment overrides, and defaults for the Anthropic messages API.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Yates-Labs/t6post/internal/llm"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "t6post.yaml"

var ErrInvalid = errors.New("invalid configuration")

// Config represents the t6post configuration
type Config struct {
	LLM    LLMConfig    `yaml:"llm"`
	Server ServerConfig `yaml:"server,omitempty"`
	Log    LogConfig    `yaml:"log,omitempty"`
}

// LLMConfig selects and configures the text-generation provider.
type LLMConfig struct {
	Provider    string  `yaml:"provider,omitempty"` // anthropic, openai, mock
	Model       string  `yaml:"model,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
	Temperature float32 `yaml:"temperature,omitempty"`
	APIKey      string  `yaml:"api_key,omitempty"`
	APIKeyEnv   string  `yaml:"api_key_env,omitempty"` // env var holding the key
	BaseURL     string  `yaml:"base_url,omitempty"`
	APIVersion  string  `yaml:"api_version,omitempty"`
}

// ServerConfig controls `t6post serve`.
type ServerConfig struct {
	Addr        string        `yaml:"addr,omitempty"`
	SessionTTL  time.Duration `yaml:"session_ttl,omitempty"`  // idle time before a page session is dropped
	MaxSessions int           `yaml:"max_sessions,omitempty"` // live page sessions allowed at once
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // text, json
}

// Option overrides a loaded setting. Options run after the environment and
// before defaults, so provider-specific defaults follow an overridden provider.
type Option func(*Config)

// WithProvider overrides llm.provider when p is non-empty.
func WithProvider(p string) Option {
	return func(c *Config) {
		if p != "" {
			c.LLM.Provider = p
		}
	}
}

// WithModel overrides llm.model when m is non-empty.
func WithModel(m string) Option {
	return func(c *Config) {
		if m != "" {
			c.LLM.Model = m
		}
	}
}

// WithLogLevel overrides log.level when level is non-empty.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.Log.Level = level
		}
	}
}

// Load reads the YAML file at path, then applies environment overrides,
// opts and defaults. A missing file is not an error.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalid, path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, err
		}
	}

	cfg.applyEnv()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.applyDefaults()
	cfg.resolveAPIKey()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyEnv overlays T6POST_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("T6POST_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("T6POST_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("T6POST_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LLM.MaxTokens = n
		}
	}
	if v := os.Getenv("T6POST_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("T6POST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("T6POST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// applyDefaults fills in missing configuration values.
func (c *Config) applyDefaults() {
	defaults := llm.DefaultConfig()

	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = defaults.Provider
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = defaults.MaxTokens
	}

	switch c.LLM.Provider {
	case llm.ProviderAnthropic:
		if c.LLM.Model == "" {
			c.LLM.Model = defaults.Model
		}
		if c.LLM.BaseURL == "" {
			c.LLM.BaseURL = defaults.BaseURL
		}
		if c.LLM.APIVersion == "" {
			c.LLM.APIVersion = defaults.APIVersion
		}
		if c.LLM.APIKeyEnv == "" {
			c.LLM.APIKeyEnv = "ANTHROPIC_API_KEY"
		}
	case llm.ProviderOpenAI:
		if c.LLM.Model == "" {
			c.LLM.Model = "gpt-4o"
		}
		if c.LLM.APIKeyEnv == "" {
			c.LLM.APIKeyEnv = "OPENAI_API_KEY"
		}
	case llm.ProviderMock:
		if c.LLM.Model == "" {
			c.LLM.Model = "mock"
		}
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.SessionTTL == 0 {
		c.Server.SessionTTL = 30 * time.Minute
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) resolveAPIKey() {
	if c.LLM.APIKey == "" && c.LLM.APIKeyEnv != "" {
		c.LLM.APIKey = os.Getenv(c.LLM.APIKeyEnv)
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderMock:
	default:
		return fmt.Errorf("%w: llm.provider %q not supported (anthropic, openai, mock)", ErrInvalid, c.LLM.Provider)
	}
	if c.LLM.MaxTokens < 0 {
		return fmt.Errorf("%w: llm.max_tokens must be positive", ErrInvalid)
	}
	if c.Server.SessionTTL < 0 || c.Server.MaxSessions < 0 {
		return fmt.Errorf("%w: server.session_ttl and server.max_sessions must be positive", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q not supported (text, json)", ErrInvalid, c.Log.Format)
	}
	return nil
}

// HasCredentials reports whether an API key was configured.
func (c *Config) HasCredentials() bool {
	return c.LLM.APIKey != ""
}

// LLMSettings converts the file settings to an llm.Config.
func (c *Config) LLMSettings() llm.Config {
	return llm.Config{
		Provider:    c.LLM.Provider,
		Model:       c.LLM.Model,
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: c.LLM.Temperature,
		APIKey:      c.LLM.APIKey,
		BaseURL:     c.LLM.BaseURL,
		APIVersion:  c.LLM.APIVersion,
	}
}
