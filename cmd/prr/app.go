package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhenry/prreview/internal/adapter/cli"
	gitadapter "github.com/mhenry/prreview/internal/adapter/git"
	githubadapter "github.com/mhenry/prreview/internal/adapter/github"
	"github.com/mhenry/prreview/internal/adapter/llm"
	"github.com/mhenry/prreview/internal/adapter/output/markdown"
	"github.com/mhenry/prreview/internal/adapter/store/sqlite"
	"github.com/mhenry/prreview/internal/domain"
	"github.com/mhenry/prreview/internal/usecase/post"
	"github.com/mhenry/prreview/internal/usecase/review"
)

// llmClient is the method set shared by all provider adapters.
type llmClient interface {
	Name() string
	Model() string
	Review(ctx context.Context, req llm.Request) (llm.ProviderResponse, error)
}

// providerAdapter bridges a provider client to the review pipeline's
// port.
type providerAdapter struct {
	client llmClient
}

func (p providerAdapter) Name() string  { return p.client.Name() }
func (p providerAdapter) Model() string { return p.client.Model() }

func (p providerAdapter) Review(ctx context.Context, req review.ProviderRequest) (review.ProviderResult, error) {
	resp, err := p.client.Review(ctx, llm.Request{Prompt: req.Prompt, MaxTokens: req.MaxTokens})
	if err != nil {
		return review.ProviderResult{}, err
	}
	return review.ProviderResult{
		Model:     resp.Model,
		Summary:   resp.Summary,
		Comments:  resp.Comments,
		TokensIn:  resp.Usage.TokensIn,
		TokensOut: resp.Usage.TokensOut,
	}, nil
}

// app wires the adapters into the two CLI entry points.
type app struct {
	orchestrator *review.Orchestrator
	github       *githubadapter.Client
	git          *gitadapter.Engine
	writer       *markdown.Writer
	store        *sqlite.Store
	repoName     string
	outputDir    string
}

// ReviewPullRequest reviews a pull request and posts the result, or
// writes a report when dryRun is set.
func (a *app) ReviewPullRequest(ctx context.Context, owner, repo string, number int, dryRun bool) (cli.Summary, error) {
	if a.github == nil {
		return cli.Summary{}, fmt.Errorf("github token is not configured")
	}

	files, err := a.github.ListChangedFiles(ctx, owner, repo, number)
	if err != nil {
		return cli.Summary{}, err
	}

	existing, err := a.github.ListReviewComments(ctx, owner, repo, number)
	if err != nil {
		return cli.Summary{}, err
	}
	for path, comments := range existing {
		for i := range comments {
			comments[i].Body = post.StripBodyPrefix(comments[i].Body)
		}
		existing[path] = comments
	}

	result, err := a.orchestrator.ReviewChanges(ctx, files, existing)
	if err != nil {
		return cli.Summary{}, err
	}

	summary := summaryFrom(result)

	if dryRun {
		path, err := a.writeReport(result, fmt.Sprintf("%s/%s", owner, repo), "", fmt.Sprintf("pr-%d", number))
		if err != nil {
			return cli.Summary{}, err
		}
		summary.ReportPath = path
		summary.CommentsPosted = result.Stats.Accepted
	} else {
		poster := post.NewPoster(a.github)
		postResult, err := poster.PostReview(ctx, post.Request{
			Owner:  owner,
			Repo:   repo,
			Number: number,
			Result: result,
		})
		if err != nil {
			return cli.Summary{}, err
		}
		summary.CommentsPosted = postResult.CommentsPosted
		summary.PostSkipped = postResult.Skipped
	}

	a.recordRun(ctx, sqlite.Run{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Kind:       "pr",
		Repository: fmt.Sprintf("%s/%s", owner, repo),
		PRNumber:   number,
		Provider:   result.Provider,
		Model:      result.Model,
	}, result)

	return summary, nil
}

// ReviewLocal reviews a local branch diff and writes a report.
func (a *app) ReviewLocal(ctx context.Context, baseRef, targetRef string, includeWorkTree bool) (cli.Summary, error) {
	if targetRef == "" {
		branch, err := a.git.CurrentBranch(ctx)
		if err != nil {
			return cli.Summary{}, fmt.Errorf("resolve target ref: %w", err)
		}
		targetRef = branch
	}

	changes, err := a.git.Changes(ctx, baseRef, targetRef, includeWorkTree)
	if err != nil {
		return cli.Summary{}, err
	}

	result, err := a.orchestrator.ReviewChanges(ctx, changes, nil)
	if err != nil {
		return cli.Summary{}, err
	}

	summary := summaryFrom(result)
	summary.CommentsPosted = result.Stats.Accepted

	path, err := a.writeReport(result, a.repoName, baseRef, targetRef)
	if err != nil {
		return cli.Summary{}, err
	}
	summary.ReportPath = path

	a.recordRun(ctx, sqlite.Run{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Kind:       "local",
		Repository: a.repoName,
		BaseRef:    baseRef,
		TargetRef:  targetRef,
		Provider:   result.Provider,
		Model:      result.Model,
	}, result)

	return summary, nil
}

func (a *app) writeReport(result review.Result, repository, baseRef, targetRef string) (string, error) {
	files := make([]markdown.FileComments, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, markdown.FileComments{Path: f.Path, Comments: f.Comments})
	}
	return a.writer.Write(markdown.Artifact{
		OutputDir:  a.outputDir,
		Repository: repository,
		BaseRef:    baseRef,
		TargetRef:  targetRef,
		Provider:   result.Provider,
		Model:      result.Model,
		Summary:    result.Summary,
		Files:      files,
	})
}

// recordRun writes run history when the store is enabled. Failures are
// logged by the caller's logger path upstream; history must never fail
// a review.
func (a *app) recordRun(ctx context.Context, run sqlite.Run, result review.Result) {
	if a.store == nil {
		return
	}
	if err := a.store.RecordRun(ctx, run); err != nil {
		logWarning("failed to record run history", err)
		return
	}

	var comments []sqlite.PostedComment
	for _, file := range result.Files {
		for _, c := range file.Comments {
			comments = append(comments, sqlite.PostedComment{
				RunID:       run.RunID,
				Path:        file.Path,
				Line:        c.Line,
				Severity:    string(c.Severity),
				Fingerprint: domain.CommentFingerprint(file.Path, c),
				Body:        c.Body,
			})
		}
	}
	if err := a.store.RecordComments(ctx, comments); err != nil {
		logWarning("failed to record comment history", err)
	}
}

func summaryFrom(result review.Result) cli.Summary {
	return cli.Summary{
		Provider:      result.Provider,
		Model:         result.Model,
		FilesReviewed: result.Stats.FilesReviewed,
		FilesSkipped:  result.Stats.FilesSkipped,
		Duplicates:    result.Stats.Duplicates,
		OffDiff:       result.Stats.OffDiff,
	}
}
