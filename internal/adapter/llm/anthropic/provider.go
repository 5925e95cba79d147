package anthropic

import (
	"context"
	"fmt"

	"github.com/mhenry/prreview/internal/adapter/llm"
	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
)

// Provider adapts the Messages client to the review pipeline's
// provider port.
type Provider struct {
	client *HTTPClient
	model  string
}

// NewProvider creates an Anthropic-backed provider.
func NewProvider(apiKey, model string) *Provider {
	return &Provider{
		client: NewHTTPClient(apiKey, model),
		model:  model,
	}
}

// Name returns the provider label used in logs and output.
func (p *Provider) Name() string {
	return "anthropic"
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

// SetRetryConfig overrides the default retry behavior.
func (p *Provider) SetRetryConfig(cfg llmhttp.RetryConfig) {
	p.client.SetRetryConfig(cfg)
}

// Review sends one file's review prompt and returns the parsed result.
func (p *Provider) Review(ctx context.Context, req llm.Request) (llm.ProviderResponse, error) {
	resp, err := p.client.Call(ctx, req.Prompt, req.MaxTokens)
	if err != nil {
		return llm.ProviderResponse{}, err
	}

	review, err := llm.ParseReview(resp.Text)
	if err != nil {
		return llm.ProviderResponse{}, fmt.Errorf("anthropic: %w", err)
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
