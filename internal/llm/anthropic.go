package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
)

// AnthropicProvider implements Completer against the Anthropic
// messages API.
type AnthropicProvider struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// AnthropicOption configures an AnthropicProvider
type AnthropicOption func(*AnthropicProvider)

// WithBaseURL overrides the API endpoint (used by tests)
func WithBaseURL(url string) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.baseURL = url
	}
}

// WithTemperature sets the sampling temperature
func WithTemperature(temperature float64) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.temperature = temperature
	}
}

// WithMaxTokens sets the response token budget
func WithMaxTokens(maxTokens int) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.maxTokens = maxTokens
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) AnthropicOption {
	return func(p *AnthropicProvider) {
		p.client.Timeout = timeout
	}
}

// NewAnthropicProvider creates a provider for the given model. The API
// key must be non-empty; config validation enforces that before any
// pipeline work.
func NewAnthropicProvider(apiKey, model string, opts ...AnthropicOption) *AnthropicProvider {
	p := &AnthropicProvider{
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: 0.2,
		maxTokens:   800,
		client: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// Complete implements Completer.Complete
func (p *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(anthropicRequest{
		Model:       p.model,
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return "", nil
	}
	return apiResp.Content[0].Text, nil
}
