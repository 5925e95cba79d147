// Package github wraps the GitHub REST API for pull request review
// operations.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/mhenry/prreview/internal/domain"
)

const perPage = 100

// DraftComment is one line comment to include in a posted review.
type DraftComment struct {
	Path string
	Line int
	Body string
}

// Client performs pull request operations against the GitHub API.
type Client struct {
	gh *github.Client
}

// NewClient creates a client authenticated with a personal access
// token.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return &Client{gh: github.NewClient(tc)}
}

// NewClientWithHTTP creates a client on an existing HTTP client (for
// testing).
func NewClientWithHTTP(httpClient *http.Client) *Client {
	return &Client{gh: github.NewClient(httpClient)}
}

// SetBaseURL points the client at a different API root (for testing).
func (c *Client) SetBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	c.gh.BaseURL = u
	return nil
}

// ListChangedFiles returns every file changed in the pull request,
// following pagination.
func (c *Client) ListChangedFiles(ctx context.Context, owner, repo string, number int) ([]domain.FileChange, error) {
	opts := &github.ListOptions{PerPage: perPage}

	var changes []domain.FileChange
	for {
		files, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files for %s/%s#%d: %w", owner, repo, number, err)
		}

		for _, f := range files {
			change := domain.FileChange{
				Path:   f.GetFilename(),
				Status: f.GetStatus(),
				Patch:  f.GetPatch(),
			}
			if f.GetStatus() == domain.FileStatusRenamed {
				change.OldPath = f.GetPreviousFilename()
			}
			changes = append(changes, change)
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return changes, nil
}

// ListReviewComments returns the review comments already on the pull
// request, keyed by file path. Comments on lines that no longer exist
// in the latest diff carry only an original line; those fall back so
// deduplication still sees them.
func (c *Client) ListReviewComments(ctx context.Context, owner, repo string, number int) (map[string][]domain.ExistingComment, error) {
	opts := &github.PullRequestListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	existing := make(map[string][]domain.ExistingComment)
	for {
		comments, resp, err := c.gh.PullRequests.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments for %s/%s#%d: %w", owner, repo, number, err)
		}

		for _, cm := range comments {
			line := cm.GetLine()
			if line == 0 {
				line = cm.GetOriginalLine()
			}
			path := cm.GetPath()
			existing[path] = append(existing[path], domain.ExistingComment{
				ID:     cm.GetID(),
				Line:   line,
				Body:   cm.GetBody(),
				Author: cm.GetUser().GetLogin(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return existing, nil
}

// CreateReview posts a review with the given summary body and line
// comments in a single submission. All comments attach to the new side
// of the diff.
func (c *Client) CreateReview(ctx context.Context, owner, repo string, number int, body string, comments []DraftComment) error {
	drafts := make([]*github.DraftReviewComment, 0, len(comments))
	for _, cm := range comments {
		drafts = append(drafts, &github.DraftReviewComment{
			Path: github.String(cm.Path),
			Line: github.Int(cm.Line),
			Side: github.String("RIGHT"),
			Body: github.String(cm.Body),
		})
	}

	req := &github.PullRequestReviewRequest{
		Body:     github.String(body),
		Event:    github.String("COMMENT"),
		Comments: drafts,
	}

	if _, _, err := c.gh.PullRequests.CreateReview(ctx, owner, repo, number, req); err != nil {
		return fmt.Errorf("failed to create review on %s/%s#%d: %w", owner, repo, number, err)
	}

	return nil
}
