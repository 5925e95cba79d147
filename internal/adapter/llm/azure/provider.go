// Package azure is the Azure OpenAI provider adapter. Azure speaks the
// OpenAI chat wire format behind a deployment-scoped path with key
// auth in the api-key header, so this package only builds the endpoint
// configuration and delegates to the openai client.
package azure

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mhenry/prreview/internal/adapter/llm/openai"
)

const defaultAPIVersion = "2024-06-01"

// Config describes an Azure OpenAI deployment.
type Config struct {
	APIKey     string
	Endpoint   string // https://<resource>.openai.azure.com
	Deployment string
	Model      string // label only, Azure routes by deployment
	APIVersion string
}

// NewProvider creates a provider for an Azure OpenAI deployment.
func NewProvider(cfg Config) *openai.Provider {
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	model := cfg.Model
	if model == "" {
		model = cfg.Deployment
	}

	query := url.Values{}
	query.Set("api-version", apiVersion)

	return openai.NewProviderFromConfig(openai.ClientConfig{
		APIKey:     cfg.APIKey,
		Model:      model,
		BaseURL:    strings.TrimSuffix(cfg.Endpoint, "/"),
		Path:       fmt.Sprintf("/openai/deployments/%s/chat/completions", cfg.Deployment),
		Provider:   "azure",
		AuthHeader: "api-key",
		Query:      query,
	})
}
