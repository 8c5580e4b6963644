// Package llm provides hosted text-completion clients behind a single interface.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// Provider represents a hosted completion provider
type Provider string

// Provider constants define supported completion providers
const (
	// ProviderTogether is the Together AI completions API
	ProviderTogether Provider = "together"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Defaults for each provider
const (
	DefaultTogetherModel   = "meta-llama/Meta-Llama-3-8B-Instruct-Lite"
	DefaultTogetherBaseURL = "https://api.together.xyz"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultTimeout         = 60 * time.Second
)

// Config holds the provider and model used for completions
type Config struct {
	Provider Provider
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// DefaultConfig returns the default configuration (Together AI)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderTogether,
		Model:    DefaultTogetherModel,
		BaseURL:  DefaultTogetherBaseURL,
		Timeout:  DefaultTimeout,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultGeminiModel,
		Timeout:  DefaultTimeout,
	}
}

// ConfigFor returns the default configuration for a provider.
func ConfigFor(provider Provider) *Config {
	if provider == ProviderGemini {
		return DefaultGeminiConfig()
	}
	return DefaultConfig()
}

// ParseProvider maps a provider name to a Provider. Empty input means Together.
func ParseProvider(value string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(value))) {
	case "", ProviderTogether:
		return ProviderTogether, nil
	case ProviderGemini:
		return ProviderGemini, nil
	}
	return "", fmt.Errorf("unknown provider %q", value)
}

// WithModel returns a copy of the config using model. An empty model keeps the current one.
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	if model != "" {
		newConfig.Model = model
	}
	return &newConfig
}

// WithBaseURL returns a copy of the config using baseURL. An empty URL keeps the current one.
func (c *Config) WithBaseURL(baseURL string) *Config {
	newConfig := *c
	if baseURL != "" {
		newConfig.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &newConfig
}
