// Package markdown renders review results to Markdown files, used by
// local mode and by dry runs where nothing is posted to GitHub.
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mhenry/prreview/internal/domain"
)

type clock func() string

// FileComments groups the accepted comments for one reviewed file.
type FileComments struct {
	Path     string
	Comments []domain.CandidateComment
}

// Artifact is everything needed to render one review report.
type Artifact struct {
	OutputDir  string
	Repository string
	BaseRef    string
	TargetRef  string
	Provider   string
	Model      string
	Summary    string
	Files      []FileComments
}

// Writer renders review artifacts into Markdown files.
type Writer struct {
	now clock
}

// NewWriter constructs a Markdown writer with a timestamp supplier.
func NewWriter(now clock) *Writer {
	return &Writer{now: now}
}

// Write persists a Markdown report to disk and returns its path.
func (w *Writer) Write(artifact Artifact) (string, error) {
	if err := os.MkdirAll(artifact.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	filename := fmt.Sprintf("%s_%s_%s_%s.md",
		sanitise(artifact.Repository),
		sanitise(artifact.TargetRef),
		sanitise(artifact.Provider),
		w.now(),
	)
	path := filepath.Join(artifact.OutputDir, filename)

	if err := os.WriteFile(path, []byte(buildContent(artifact)), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	return path, nil
}

func buildContent(artifact Artifact) string {
	var builder strings.Builder
	caser := cases.Title(language.English)

	builder.WriteString("# Code Review Report\n\n")
	builder.WriteString(fmt.Sprintf("- Provider: %s (%s)\n", artifact.Provider, artifact.Model))
	builder.WriteString(fmt.Sprintf("- Base: %s\n", artifact.BaseRef))
	builder.WriteString(fmt.Sprintf("- Target: %s\n\n", artifact.TargetRef))
	builder.WriteString("## Summary\n\n")
	builder.WriteString(artifact.Summary)
	builder.WriteString("\n\n")

	total := 0
	for _, file := range artifact.Files {
		total += len(file.Comments)
	}
	if total == 0 {
		builder.WriteString("No comments.\n")
		return builder.String()
	}

	builder.WriteString("## Comments\n\n")
	for _, file := range artifact.Files {
		if len(file.Comments) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("### %s\n\n", file.Path))
		for _, c := range file.Comments {
			builder.WriteString(fmt.Sprintf("- Line %d (%s): %s\n", c.Line, caser.String(string(c.Severity)), c.Body))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func sanitise(value string) string {
	if value == "" {
		return "unknown"
	}
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, string(filepath.Separator), "-")
	value = strings.ReplaceAll(value, " ", "-")
	return value
}
