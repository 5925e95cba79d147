package review_test

import (
	"strings"
	"testing"

	"github.com/mhenry/prreview/internal/domain"
	"github.com/mhenry/prreview/internal/usecase/review"
)

func TestPromptBuilderIncludesFileDetails(t *testing.T) {
	b := review.NewPromptBuilder()

	prompt, err := b.Build("Focus on concurrency.", domain.FileChange{
		Path:    "worker.go",
		OldPath: "pool.go",
		Status:  domain.FileStatusRenamed,
		Patch:   simplePatch,
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	for _, want := range []string{
		"File: worker.go (renamed, was pool.go)",
		"Focus on concurrency.",
		"+line2",
		`"severity"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
}

func TestPromptBuilderOmitsEmptySections(t *testing.T) {
	b := review.NewPromptBuilder()

	prompt, err := b.Build("", domain.FileChange{
		Path:   "main.go",
		Status: domain.FileStatusModified,
		Patch:  simplePatch,
	})
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	if strings.Contains(prompt, "Additional instructions") {
		t.Error("expected instructions section to be omitted")
	}
	if strings.Contains(prompt, ", was ") {
		t.Error("expected old path note to be omitted")
	}
}
