package dedup_test

import (
	"testing"

	"github.com/mhenry/prreview/internal/dedup"
)

func TestTemplatize_Identifiers(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "lowerCamelCase",
			body: "Unused variable `fooBar` should be removed.",
			want: "Unused variable `{var}` should be removed.",
		},
		{
			name: "snake_case",
			body: "Rename old_value to match",
			want: "Rename {snake_var} to match",
		},
		{
			name: "ALL_CAPS",
			body: "MAX_RETRIES is hardcoded",
			want: "{CONST} is hardcoded",
		},
		{
			name: "UpperCamelCase",
			body: "HttpClient leaks connections",
			want: "{Class} leaks connections",
		},
		{
			name: "method call",
			body: "Check the result of foo.parse() before use",
			want: "Check the result of foo.{method}() before use",
		},
		{
			name: "env var parsing",
			body: "json parsing on DATABASE_URL fails silently",
			want: "json parsing on {ENV_VAR} fails silently",
		},
		{
			name: "common words survive",
			body: "This should be removed here",
			want: "This should be removed here",
		},
		{
			name: "language keywords survive",
			body: "return nil instead of panic",
			want: "return nil instead of panic",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dedup.Templatize(tt.body)
			if got != tt.want {
				t.Errorf("Templatize(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestTemplatize_SameStructureSameTemplate(t *testing.T) {
	a := dedup.Templatize("Unused variable `fooBar` should be removed.")
	b := dedup.Templatize("Unused variable `bazQux` should be removed.")
	if a != b {
		t.Errorf("expected identical templates, got %q vs %q", a, b)
	}
}

func TestTemplatize_Idempotent(t *testing.T) {
	bodies := []string{
		"Unused variable `fooBar` should be removed.",
		"Rename old_value to match MAX_RETRIES in HttpClient",
		"Check the result of foo.parse() before use",
		"json parsing on DATABASE_URL fails silently",
		"plain sentence with no identifiers at all",
	}

	for _, body := range bodies {
		once := dedup.Templatize(body)
		twice := dedup.Templatize(once)
		if once != twice {
			t.Errorf("Templatize not idempotent for %q:\n once: %q\ntwice: %q", body, once, twice)
		}
	}
}
