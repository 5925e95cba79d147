package review

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/mhenry/prreview/internal/domain"
)

const defaultMaxTokens = 4096

// PromptBuilder renders per-file review prompts.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder creates a builder with the default template.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		tmpl: template.Must(template.New("review").Parse(defaultPromptTemplate)),
	}
}

// promptData holds the data available to the prompt template.
type promptData struct {
	Instructions string
	Path         string
	Status       string
	OldPath      string
	Patch        string
}

// Build renders the review prompt for one changed file.
func (b *PromptBuilder) Build(instructions string, file domain.FileChange) (string, error) {
	var buf bytes.Buffer
	err := b.tmpl.Execute(&buf, promptData{
		Instructions: instructions,
		Path:         file.Path,
		Status:       file.Status,
		OldPath:      file.OldPath,
		Patch:        file.Patch,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}
	return buf.String(), nil
}

const defaultPromptTemplate = `Review the following change and report problems worth a reviewer's attention: bugs, unsafe patterns, missing error handling, and misleading naming. Do not comment on style preferences or restate the diff.

File: {{.Path}} ({{.Status}}{{if .OldPath}}, was {{.OldPath}}{{end}})
{{- if .Instructions}}

Additional instructions:
{{.Instructions}}
{{- end}}

Diff:
` + "```diff\n{{.Patch}}\n```" + `

Respond with JSON only, in this shape:
{
  "summary": "one or two sentences about the change",
  "comments": [
    {"line": <new-file line number from the diff>, "body": "<the comment>", "severity": "high|medium|low"}
  ]
}

Only reference line numbers that appear on added or context lines of the diff. Return an empty comments array if nothing needs attention.`
