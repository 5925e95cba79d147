package openai

import (
	"context"
	"fmt"

	"github.com/mhenry/prreview/internal/adapter/llm"
	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
)

// Provider adapts the chat client to the review pipeline's provider
// port. It sends the prompt and parses the model's JSON review out of
// the completion text.
type Provider struct {
	client *HTTPClient
	name   string
	model  string
}

// NewProvider creates a provider backed by the public OpenAI API.
func NewProvider(apiKey, model string) *Provider {
	return NewProviderFromConfig(ClientConfig{
		APIKey: apiKey,
		Model:  model,
	})
}

// NewProviderFromConfig creates a provider for any OpenAI-compatible
// endpoint.
func NewProviderFromConfig(cfg ClientConfig) *Provider {
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	return &Provider{
		client: NewHTTPClientFromConfig(cfg),
		name:   cfg.Provider,
		model:  cfg.Model,
	}
}

// Name returns the provider label used in logs and output.
func (p *Provider) Name() string {
	return p.name
}

// Model returns the configured model identifier.
func (p *Provider) Model() string {
	return p.model
}

// SetBaseURL sets a custom base URL (for testing).
func (p *Provider) SetBaseURL(url string) {
	p.client.SetBaseURL(url)
}

// SetLogger attaches a structured logger to the underlying client.
func (p *Provider) SetLogger(logger llmhttp.Logger) {
	p.client.SetLogger(logger)
}

// Review sends one file's review prompt and returns the parsed result.
func (p *Provider) Review(ctx context.Context, req llm.Request) (llm.ProviderResponse, error) {
	resp, err := p.client.Call(ctx, req.Prompt, req.MaxTokens)
	if err != nil {
		return llm.ProviderResponse{}, err
	}

	review, err := llm.ParseReview(resp.Text)
	if err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("%s: %w", p.name, err)
	}

	model := resp.Model
	if model == "" {
		model = p.model
	}

	return llm.ProviderResponse{
		Model:    model,
		Summary:  review.Summary,
		Comments: review.Comments,
		Usage: llm.UsageMetadata{
			TokensIn:  resp.TokensIn,
			TokensOut: resp.TokensOut,
		},
	}, nil
}
