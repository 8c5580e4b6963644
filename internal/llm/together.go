package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of an error response is kept in APIError.
const maxErrorBody = 512

// TogetherClient implements Client for the Together AI completions endpoint
type TogetherClient struct {
	httpClient *http.Client
	config     *Config
	apiKey     string
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// NewTogetherClient creates a client. A nil httpClient uses one with the config timeout.
func NewTogetherClient(config *Config, apiKey string, httpClient *http.Client) *TogetherClient {
	if config == nil {
		config = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	return &TogetherClient{httpClient: httpClient, config: config, apiKey: apiKey}
}

// Complete posts a completion request and returns the first choice's text
func (c *TogetherClient) Complete(ctx context.Context, prompt string, params Params) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       c.config.Model,
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
		TopP:        params.TopP,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	baseURL := c.config.BaseURL
	if baseURL == "" {
		baseURL = DefaultTogetherBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/v1/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Provider: ProviderTogether, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Provider: ProviderTogether, StatusCode: resp.StatusCode, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return "", &APIError{Provider: ProviderTogether, StatusCode: resp.StatusCode, Message: msg}
	}

	var parsed completionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &APIError{Provider: ProviderTogether, StatusCode: resp.StatusCode, Message: "malformed response", Cause: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &APIError{Provider: ProviderTogether, StatusCode: resp.StatusCode, Message: "no choices in response"}
	}

	return strings.TrimSpace(parsed.Choices[0].Text), nil
}

// Model returns the model identifier
func (c *TogetherClient) Model() string {
	return c.config.Model
}

// Close is a no-op; the HTTP client holds no dedicated resources
func (c *TogetherClient) Close() error {
	return nil
}
