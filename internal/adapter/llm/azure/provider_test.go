package azure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhenry/prreview/internal/adapter/llm"
	"github.com/mhenry/prreview/internal/adapter/llm/azure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_EndpointShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/gpt4-review/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "test-key", r.Header.Get("api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"model":"gpt-4o","choices":[{"message":{"role":"assistant","content":"{\"summary\":\"ok\",\"comments\":[]}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":5}}`))
	}))
	defer server.Close()

	provider := azure.NewProvider(azure.Config{
		APIKey:     "test-key",
		Endpoint:   server.URL,
		Deployment: "gpt4-review",
	})

	resp, err := provider.Review(context.Background(), llm.Request{Prompt: "p", MaxTokens: 100})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Summary)
	assert.Equal(t, "azure", provider.Name())
}

func TestNewProvider_ModelFallsBackToDeployment(t *testing.T) {
	provider := azure.NewProvider(azure.Config{
		APIKey:     "test-key",
		Endpoint:   "https://example.openai.azure.com",
		Deployment: "gpt4-review",
	})

	assert.Equal(t, "gpt4-review", provider.Model())
}
