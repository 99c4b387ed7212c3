package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DeepSeekDirectProvider is the third fallback stage: a raw HTTP call to
// the DeepSeek chat completions endpoint, bypassing the SDK client.
type DeepSeekDirectProvider struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	config     Config
}

type deepseekDirectRequest struct {
	Model       string                  `json:"model"`
	Messages    []deepseekDirectMessage `json:"messages"`
	Temperature float32                 `json:"temperature,omitempty"`
}

type deepseekDirectMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type deepseekDirectResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewDeepSeekDirectProvider creates the direct DeepSeek fallback.
func NewDeepSeekDirectProvider(config Config) (*DeepSeekDirectProvider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("DeepSeek API key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = deepseekDefaultBaseURL
	}

	model := config.Model
	if model == "" {
		model = "deepseek-reasoner"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 45 * time.Second
	}

	return &DeepSeekDirectProvider{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		config: config,
	}, nil
}

// Name returns the provider name.
func (p *DeepSeekDirectProvider) Name() string {
	return "deepseek-direct"
}

// IsAvailable checks if the provider is properly configured.
func (p *DeepSeekDirectProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}

// Complete posts the prompt to the chat completions endpoint.
func (p *DeepSeekDirectProvider) Complete(ctx context.Context, prompt string) (string, error) {
	apiReq := deepseekDirectRequest{
		Model: p.model,
		Messages: []deepseekDirectMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: p.config.Temperature,
	}

	body, err := json.Marshal(apiReq)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp deepseekDirectResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from DeepSeek")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GeminiDirectProvider is the final fallback stage: the Gemini REST API
// with the baseline gemini-pro model.
type GeminiDirectProvider struct {
	inner *GeminiProvider
}

// NewGeminiDirectProvider creates the direct Gemini fallback.
func NewGeminiDirectProvider(config Config) (*GeminiDirectProvider, error) {
	config.Model = "gemini-pro"
	inner, err := NewGeminiProvider(config)
	if err != nil {
		return nil, err
	}
	return &GeminiDirectProvider{inner: inner}, nil
}

// Name returns the provider name.
func (p *GeminiDirectProvider) Name() string {
	return "gemini-direct"
}

// IsAvailable checks if the provider is properly configured.
func (p *GeminiDirectProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete posts the prompt to the generateContent endpoint.
func (p *GeminiDirectProvider) Complete(ctx context.Context, prompt string) (string, error) {
	return p.inner.Complete(ctx, prompt)
}
