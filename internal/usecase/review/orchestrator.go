package review

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mhenry/prreview/internal/dedup"
	"github.com/mhenry/prreview/internal/diff"
	"github.com/mhenry/prreview/internal/domain"
)

// promptTokenLimit is the largest prompt sent to a provider. Files
// whose patch blows past this are skipped instead of truncated; a
// half-seen diff produces confidently wrong comments.
const promptTokenLimit = 100_000

// Options tunes the orchestrator.
type Options struct {
	// Instructions are appended to every prompt.
	Instructions string

	// MaxCommentsPerFile caps accepted comments per file. Zero means no
	// cap. When the cap bites, higher severities win.
	MaxCommentsPerFile int

	// MaxTokens is the completion budget per file. Zero uses the
	// default.
	MaxTokens int

	// Dedup tunes the duplicate filter.
	Dedup dedup.Options
}

// FileReview holds the accepted comments for one file.
type FileReview struct {
	Path     string
	Comments []domain.CandidateComment
}

// Stats counts what happened to candidates during a run.
type Stats struct {
	FilesReviewed int
	FilesSkipped  int
	Candidates    int
	OffDiff       int
	Duplicates    int
	Accepted      int
	TokensIn      int
	TokensOut     int
}

// Result is the outcome of reviewing a set of file changes.
type Result struct {
	Provider string
	Model    string
	Summary  string
	Files    []FileReview
	Stats    Stats
}

// Orchestrator drives the per-file review pipeline.
type Orchestrator struct {
	provider Provider
	engine   *dedup.Engine
	prompts  *PromptBuilder
	logger   Logger
	estimate TokenEstimator
	opts     Options
}

// NewOrchestrator wires the pipeline. estimate may be nil, in which
// case a crude character-based estimate is used.
func NewOrchestrator(provider Provider, logger Logger, estimate TokenEstimator, opts Options) *Orchestrator {
	if logger == nil {
		logger = NopLogger{}
	}
	if estimate == nil {
		estimate = func(text string) int { return len(text) / 4 }
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return &Orchestrator{
		provider: provider,
		engine:   dedup.NewEngine(opts.Dedup),
		prompts:  NewPromptBuilder(),
		logger:   logger,
		estimate: estimate,
		opts:     opts,
	}
}

// ReviewChanges reviews each changed file and returns the accepted
// comments. existing maps file paths to comments already on the change;
// candidates that duplicate them are dropped. Per-file provider
// failures are logged and skipped so one bad file cannot sink the run.
func (o *Orchestrator) ReviewChanges(ctx context.Context, files []domain.FileChange, existing map[string][]domain.ExistingComment) (Result, error) {
	result := Result{
		Provider: o.provider.Name(),
		Model:    o.provider.Model(),
	}

	var summaries []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if file.Patch == "" {
			result.Stats.FilesSkipped++
			o.logger.LogInfo(ctx, "skipping file without patch", map[string]interface{}{
				"path":   file.Path,
				"status": file.Status,
			})
			continue
		}

		commentable := diff.NewLineSet(diff.CommentableLines(file.Patch))
		if len(commentable) == 0 {
			result.Stats.FilesSkipped++
			o.logger.LogInfo(ctx, "skipping file with no commentable lines", map[string]interface{}{
				"path": file.Path,
			})
			continue
		}

		prompt, err := o.prompts.Build(o.opts.Instructions, file)
		if err != nil {
			return result, fmt.Errorf("build prompt for %s: %w", file.Path, err)
		}

		if tokens := o.estimate(prompt); tokens > promptTokenLimit {
			result.Stats.FilesSkipped++
			o.logger.LogWarning(ctx, "skipping oversized file", map[string]interface{}{
				"path":   file.Path,
				"tokens": tokens,
			})
			continue
		}

		provResult, err := o.provider.Review(ctx, ProviderRequest{
			Prompt:    prompt,
			MaxTokens: o.opts.MaxTokens,
		})
		if err != nil {
			result.Stats.FilesSkipped++
			o.logger.LogWarning(ctx, "provider review failed", map[string]interface{}{
				"path":     file.Path,
				"provider": o.provider.Name(),
				"error":    err.Error(),
			})
			continue
		}

		result.Stats.FilesReviewed++
		result.Stats.Candidates += len(provResult.Comments)
		result.Stats.TokensIn += provResult.TokensIn
		result.Stats.TokensOut += provResult.TokensOut
		if provResult.Model != "" {
			result.Model = provResult.Model
		}
		if provResult.Summary != "" {
			summaries = append(summaries, fmt.Sprintf("%s: %s", file.Path, provResult.Summary))
		}

		accepted := o.filterComments(ctx, file.Path, provResult.Comments, commentable, existing[file.Path], &result.Stats)
		if len(accepted) > 0 {
			result.Files = append(result.Files, FileReview{Path: file.Path, Comments: accepted})
		}
	}

	result.Summary = strings.Join(summaries, "\n")
	return result, nil
}

// filterComments applies the acceptance pipeline to one file's
// candidates: on-diff validation, then deduplication, then the
// per-file cap.
func (o *Orchestrator) filterComments(ctx context.Context, path string, candidates []domain.CandidateComment, commentable diff.LineSet, existing []domain.ExistingComment, stats *Stats) []domain.CandidateComment {
	onDiff := make([]domain.CandidateComment, 0, len(candidates))
	for _, c := range candidates {
		if !commentable.Contains(c.Line) {
			stats.OffDiff++
			o.logger.LogInfo(ctx, "dropping off-diff comment", map[string]interface{}{
				"path": path,
				"line": c.Line,
			})
			continue
		}
		onDiff = append(onDiff, c)
	}

	unique, dropped := o.engine.FilterDuplicates(onDiff, existing)
	stats.Duplicates += dropped

	if o.opts.MaxCommentsPerFile > 0 && len(unique) > o.opts.MaxCommentsPerFile {
		unique = capBySeverity(unique, o.opts.MaxCommentsPerFile)
		o.logger.LogInfo(ctx, "capped comments for file", map[string]interface{}{
			"path": path,
			"cap":  o.opts.MaxCommentsPerFile,
		})
	}

	stats.Accepted += len(unique)
	return unique
}

var severityRank = map[domain.Severity]int{
	domain.SeverityHigh:   0,
	domain.SeverityMedium: 1,
	domain.SeverityLow:    2,
}

// capBySeverity keeps the n most severe comments, restoring line order
// among the survivors.
func capBySeverity(comments []domain.CandidateComment, n int) []domain.CandidateComment {
	ranked := make([]domain.CandidateComment, len(comments))
	copy(ranked, comments)
	sort.SliceStable(ranked, func(i, j int) bool {
		return severityRank[ranked[i].Severity] < severityRank[ranked[j].Severity]
	})
	kept := ranked[:n]
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Line < kept[j].Line
	})
	return kept
}
