// Package llm provides model provider adapters.
package llm

import "github.com/mhenry/prreview/internal/domain"

// UsageMetadata captures token usage from model API calls.
type UsageMetadata struct {
	TokensIn  int
	TokensOut int
}

// ProviderResponse is the standardized response from any model
// provider. All provider clients (openai, azure, anthropic, custom)
// return this type.
type ProviderResponse struct {
	Model    string
	Summary  string
	Comments []domain.CandidateComment
	Usage    UsageMetadata
}

// Request carries one file's review request to a provider client.
type Request struct {
	Prompt    string
	MaxTokens int
}
