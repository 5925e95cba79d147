package http_test

import (
	"testing"

	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "json fence",
			response: "Here you go:\n```json\n{\"summary\": \"ok\"}\n```\nDone.",
			expected: `{"summary": "ok"}`,
		},
		{
			name:     "plain fence",
			response: "```\n{\"summary\": \"ok\"}\n```",
			expected: `{"summary": "ok"}`,
		},
		{
			name:     "raw object with prose",
			response: `The review follows. {"summary": "ok", "comments": []} Hope that helps.`,
			expected: `{"summary": "ok", "comments": []}`,
		},
		{
			name:     "nested braces",
			response: `{"a": {"b": 1}, "c": 2}`,
			expected: `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name:     "no json",
			response: "I found no issues.",
			expected: "",
		},
		{
			name:     "unbalanced braces",
			response: `{"summary": "unterminated`,
			expected: "",
		},
		{
			name:     "empty input",
			response: "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, llmhttp.ExtractJSON(tt.response))
		})
	}
}
