// Package openai is the Chat Completions client and provider adapter.
// The Azure and Custom providers reuse this client with a different
// endpoint configuration since both speak the same wire format.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultPath    = "/v1/chat/completions"
	defaultTimeout = 60 * time.Second
	systemPrompt   = "You are a code review assistant. Analyze the diff and respond with review comments in JSON format."
)

// ClientConfig describes an OpenAI-compatible endpoint. The zero value
// plus APIKey and Model targets the public OpenAI API.
type ClientConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	Path     string
	Provider string // label used in errors and logs

	// AuthHeader names the header that carries the key. Empty means
	// "Authorization" with a "Bearer " prefix; Azure uses "api-key"
	// with no prefix.
	AuthHeader string

	// Query is appended to the request URL (Azure's api-version).
	Query url.Values

	Timeout time.Duration
	Retry   llmhttp.RetryConfig
}

// HTTPClient is an HTTP client for OpenAI-compatible chat endpoints.
type HTTPClient struct {
	cfg    ClientConfig
	client *http.Client
	logger llmhttp.Logger
}

// NewHTTPClient creates a client for the public OpenAI API.
func NewHTTPClient(apiKey, model string) *HTTPClient {
	return NewHTTPClientFromConfig(ClientConfig{
		APIKey: apiKey,
		Model:  model,
	})
}

// NewHTTPClientFromConfig creates a client for any OpenAI-compatible
// endpoint.
func NewHTTPClientFromConfig(cfg ClientConfig) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Path == "" {
		cfg.Path = defaultPath
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Retry.MaxRetries == 0 {
		cfg.Retry = llmhttp.DefaultRetryConfig()
	}
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetBaseURL sets a custom base URL (for testing).
func (c *HTTPClient) SetBaseURL(url string) {
	c.cfg.BaseURL = url
}

// SetLogger attaches a structured logger for request/response logging.
func (c *HTTPClient) SetLogger(logger llmhttp.Logger) {
	c.logger = logger
}

// APIResponse represents the parsed response from the API.
type APIResponse struct {
	Text      string
	TokensIn  int
	TokensOut int
	Model     string
}

// Call makes a chat completion request.
func (c *HTTPClient) Call(ctx context.Context, prompt string, maxTokens int) (*APIResponse, error) {
	reqBody := ChatRequest{
		Model: c.cfg.Model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens: maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqURL := c.cfg.BaseURL + c.cfg.Path
	if len(c.cfg.Query) > 0 {
		reqURL += "?" + c.cfg.Query.Encode()
	}

	if c.logger != nil {
		c.logger.LogRequest(ctx, llmhttp.RequestLog{
			Provider:    c.cfg.Provider,
			Model:       c.cfg.Model,
			Timestamp:   time.Now(),
			PromptChars: len(prompt),
			APIKey:      c.cfg.APIKey,
		})
	}
	start := time.Now()

	var resp *http.Response
	err = llmhttp.RetryWithBackoff(ctx, func(ctx context.Context) error {
		req, reqErr := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(jsonData))
		if reqErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeUnknown,
				Message:   reqErr.Error(),
				Retryable: false,
				Provider:  c.cfg.Provider,
			}
		}

		req.Header.Set("Content-Type", "application/json")
		if c.cfg.AuthHeader == "" {
			req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		} else {
			req.Header.Set(c.cfg.AuthHeader, c.cfg.APIKey)
		}

		var callErr error
		resp, callErr = c.client.Do(req)
		if callErr != nil {
			return &llmhttp.Error{
				Type:      llmhttp.ErrTypeTimeout,
				Message:   callErr.Error(),
				Retryable: true,
				Provider:  c.cfg.Provider,
			}
		}

		if resp.StatusCode >= 400 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return c.handleErrorResponse(resp.StatusCode, bodyBytes)
		}

		return nil
	}, c.cfg.Retry)

	if err != nil {
		if c.logger != nil {
			c.logger.LogError(ctx, llmhttp.ErrorLog{
				Provider:  c.cfg.Provider,
				Model:     c.cfg.Model,
				Timestamp: time.Now(),
				Duration:  time.Since(start),
				Error:     err,
				Retryable: llmhttp.ShouldRetry(err),
			})
		}
		return nil, err
	}
	defer resp.Body.Close()

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	if c.logger != nil {
		c.logger.LogResponse(ctx, llmhttp.ResponseLog{
			Provider:   c.cfg.Provider,
			Model:      c.cfg.Model,
			Timestamp:  time.Now(),
			Duration:   time.Since(start),
			TokensIn:   chatResp.Usage.PromptTokens,
			TokensOut:  chatResp.Usage.CompletionTokens,
			StatusCode: resp.StatusCode,
		})
	}

	return &APIResponse{
		Text:      chatResp.Choices[0].Message.Content,
		TokensIn:  chatResp.Usage.PromptTokens,
		TokensOut: chatResp.Usage.CompletionTokens,
		Model:     chatResp.Model,
	}, nil
}

// handleErrorResponse maps HTTP status codes to typed errors.
func (c *HTTPClient) handleErrorResponse(statusCode int, body []byte) error {
	var errResp ErrorResponse
	message := fmt.Sprintf("HTTP %d", statusCode)
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return llmhttp.MapStatusCode(c.cfg.Provider, statusCode, message)
}
