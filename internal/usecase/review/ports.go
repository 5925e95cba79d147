// Package review runs the per-file review pipeline: map the diff,
// ask a provider for comments, then drop everything that is either off
// the diff or redundant with comments already on the change.
package review

import (
	"context"

	"github.com/mhenry/prreview/internal/domain"
)

// ProviderRequest carries one file's review prompt to a provider.
type ProviderRequest struct {
	Prompt    string
	MaxTokens int
}

// ProviderResult is a provider's parsed review of one file.
type ProviderResult struct {
	Model     string
	Summary   string
	Comments  []domain.CandidateComment
	TokensIn  int
	TokensOut int
}

// Provider generates review comments for a prompt. Implementations
// wrap model APIs and return already-parsed comments; lines are still
// untrusted at this point.
type Provider interface {
	Name() string
	Model() string
	Review(ctx context.Context, req ProviderRequest) (ProviderResult, error)
}

// TokenEstimator estimates the token count of a prompt so oversized
// files can be skipped before an API call is wasted on them.
type TokenEstimator func(text string) int
