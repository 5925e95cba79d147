package llm

import (
	"encoding/json"
	"fmt"

	llmhttp "github.com/mhenry/prreview/internal/adapter/llm/http"
	"github.com/mhenry/prreview/internal/domain"
)

// reviewPayload is the JSON shape every provider asks the model to emit.
type reviewPayload struct {
	Summary  string `json:"summary"`
	Comments []struct {
		Line     int    `json:"line"`
		Body     string `json:"body"`
		Severity string `json:"severity"`
	} `json:"comments"`
}

// ParseReview extracts the structured review from raw model output. The
// model may wrap the JSON in markdown fences or prose; comments with an
// empty body or a non-positive line are dropped rather than rejected,
// the line validation against the diff happens downstream.
func ParseReview(text string) (domain.Review, error) {
	jsonText := llmhttp.ExtractJSON(text)
	if jsonText == "" {
		return domain.Review{}, fmt.Errorf("no JSON found in model response")
	}

	var payload reviewPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		return domain.Review{}, fmt.Errorf("failed to parse review JSON: %w", err)
	}

	review := domain.Review{Summary: payload.Summary}
	for _, c := range payload.Comments {
		if c.Body == "" || c.Line <= 0 {
			continue
		}
		review.Comments = append(review.Comments, domain.CandidateComment{
			Line:     c.Line,
			Body:     c.Body,
			Severity: domain.ParseSeverity(c.Severity),
		})
	}

	return review, nil
}
