package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMissingCredential is returned when a client is requested without an API key.
var ErrMissingCredential = errors.New("API key is required")

// Params are the sampling parameters of one completion request.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Client is an abstraction over hosted completion providers
type Client interface {
	// Complete returns the raw completion text for prompt
	Complete(ctx context.Context, prompt string, params Params) (string, error)
	// Model returns the model identifier requests are sent to
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new completion client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingCredential
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewTogetherClient(config, apiKey, nil), nil
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete generates text with the configured Gemini model
func (c *GeminiClient) Complete(ctx context.Context, prompt string, params Params) (string, error) {
	model := c.client.GenerativeModel(c.config.Model)
	if params.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(params.MaxTokens)) //nolint:gosec // token limits are small
	}
	model.SetTemperature(float32(params.Temperature))
	if params.TopP > 0 {
		model.SetTopP(float32(params.TopP))
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APIError{Provider: ProviderGemini, Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp)
}

// Model returns the Gemini model name
func (c *GeminiClient) Model() string {
	return c.config.Model
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", &APIError{Provider: ProviderGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &APIError{Provider: ProviderGemini, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", &APIError{Provider: ProviderGemini, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
