// Package custom is the provider adapter for self-hosted
// OpenAI-compatible endpoints (vLLM, Ollama, LiteLLM proxies). It is
// the openai client pointed at an arbitrary base URL.
package custom

import (
	"strings"

	"github.com/mhenry/prreview/internal/adapter/llm/openai"
)

// Config describes an OpenAI-compatible endpoint.
type Config struct {
	APIKey  string // optional, some local servers skip auth
	Model   string
	BaseURL string
	Path    string // empty means /v1/chat/completions
}

// NewProvider creates a provider for the configured endpoint.
func NewProvider(cfg Config) *openai.Provider {
	return openai.NewProviderFromConfig(openai.ClientConfig{
		APIKey:   cfg.APIKey,
		Model:    cfg.Model,
		BaseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		Path:     cfg.Path,
		Provider: "custom",
	})
}
