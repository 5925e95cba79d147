package http_test

import (
	"errors"
	"fmt"
	"testing"

	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
	"github.com/stretchr/testify/assert"
)

func TestMapStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantType  llmhttp.ErrorType
		retryable bool
	}{
		{401, llmhttp.ErrTypeAuthentication, false},
		{403, llmhttp.ErrTypeAuthentication, false},
		{404, llmhttp.ErrTypeModelNotFound, false},
		{429, llmhttp.ErrTypeRateLimit, true},
		{400, llmhttp.ErrTypeInvalidRequest, false},
		{422, llmhttp.ErrTypeInvalidRequest, false},
		{500, llmhttp.ErrTypeServiceUnavailable, true},
		{503, llmhttp.ErrTypeServiceUnavailable, true},
		{418, llmhttp.ErrTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			err := llmhttp.MapStatusCode("openai", tt.status, "message")
			assert.Equal(t, tt.wantType, err.Type)
			assert.Equal(t, tt.retryable, err.Retryable)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, "openai", err.Provider)
		})
	}
}

func TestErrorMessageIncludesContext(t *testing.T) {
	err := llmhttp.MapStatusCode("anthropic", 429, "slow down")

	msg := err.Error()
	assert.Contains(t, msg, "anthropic")
	assert.Contains(t, msg, "rate limit")
	assert.Contains(t, msg, "slow down")
	assert.Contains(t, msg, "429")
}

func TestErrorIsMatchesOnType(t *testing.T) {
	err := llmhttp.MapStatusCode("openai", 401, "bad key")
	target := &llmhttp.Error{Type: llmhttp.ErrTypeAuthentication}

	assert.True(t, errors.Is(err, target))
	assert.False(t, errors.Is(err, &llmhttp.Error{Type: llmhttp.ErrTypeRateLimit}))
}
