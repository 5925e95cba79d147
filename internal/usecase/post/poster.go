// Package post turns accepted review comments into a GitHub review
// submission.
package post

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mhenry/prreview/internal/adapter/github"
	"github.com/mhenry/prreview/internal/domain"
	"github.com/mhenry/prreview/internal/usecase/review"
)

// ReviewClient posts reviews to a pull request. Implemented by the
// GitHub adapter; an interface so tests can capture submissions.
type ReviewClient interface {
	CreateReview(ctx context.Context, owner, repo string, number int, body string, comments []github.DraftComment) error
}

// Poster submits review results.
type Poster struct {
	client ReviewClient
}

// NewPoster creates a poster on the given client.
func NewPoster(client ReviewClient) *Poster {
	return &Poster{client: client}
}

// Request identifies the pull request to post to.
type Request struct {
	Owner  string
	Repo   string
	Number int
	Result review.Result
}

// PostResult reports what was submitted.
type PostResult struct {
	CommentsPosted int
	Skipped        bool
}

// PostReview submits one review containing the summary body and all
// accepted line comments. Nothing is posted when the run produced
// neither comments nor a summary.
func (p *Poster) PostReview(ctx context.Context, req Request) (PostResult, error) {
	var drafts []github.DraftComment
	for _, file := range req.Result.Files {
		for _, c := range file.Comments {
			drafts = append(drafts, github.DraftComment{
				Path: file.Path,
				Line: c.Line,
				Body: FormatBody(c),
			})
		}
	}

	if len(drafts) == 0 && req.Result.Summary == "" {
		return PostResult{Skipped: true}, nil
	}

	body := buildReviewBody(req.Result, len(drafts))
	if err := p.client.CreateReview(ctx, req.Owner, req.Repo, req.Number, body, drafts); err != nil {
		return PostResult{}, fmt.Errorf("post review: %w", err)
	}

	return PostResult{CommentsPosted: len(drafts)}, nil
}

var severityCaser = cases.Title(language.English)

// FormatBody renders a comment body with its severity badge.
func FormatBody(c domain.CandidateComment) string {
	if c.Severity == "" {
		return c.Body
	}
	return fmt.Sprintf("**%s:** %s", severityCaser.String(string(c.Severity)), c.Body)
}

// StripBodyPrefix removes a severity badge produced by FormatBody, so
// comments read back from GitHub compare cleanly against fresh
// candidates.
func StripBodyPrefix(body string) string {
	for _, sev := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		prefix := fmt.Sprintf("**%s:** ", severityCaser.String(string(sev)))
		if strings.HasPrefix(body, prefix) {
			return body[len(prefix):]
		}
	}
	return body
}

func buildReviewBody(result review.Result, commentCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Automated review (%s, %s)\n\n", result.Provider, result.Model)

	if result.Summary != "" {
		b.WriteString(result.Summary)
		b.WriteString("\n\n")
	}

	stats := result.Stats
	fmt.Fprintf(&b, "_%d file(s) reviewed, %d comment(s) posted", stats.FilesReviewed, commentCount)
	if stats.Duplicates > 0 {
		fmt.Fprintf(&b, ", %d duplicate(s) suppressed", stats.Duplicates)
	}
	if stats.OffDiff > 0 {
		fmt.Fprintf(&b, ", %d off-diff comment(s) dropped", stats.OffDiff)
	}
	b.WriteString("._\n")

	return b.String()
}
