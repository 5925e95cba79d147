package dedup

import (
	"github.com/mhenry/prreview/internal/domain"
)

// Options holds the tuning parameters for the deduplication engine.
// The defaults were chosen empirically; tests pin behavior at these
// exact values, so change them through configuration, not here.
type Options struct {
	// Proximity is the maximum line distance between a candidate and an
	// existing comment for the two to be compared at all. Comments
	// farther apart describe unrelated code even when textually
	// identical.
	Proximity int

	// KeywordThreshold is the Jaccard keyword-overlap score above which
	// two comments are duplicates.
	KeywordThreshold float64

	// SimilarityThreshold is the raw body similarity score above which
	// two comments are duplicates.
	SimilarityThreshold float64

	// TemplateThreshold is the templatized-body similarity score above
	// which two comments are duplicates. Higher than the raw threshold
	// because templates already strip identifier noise.
	TemplateThreshold float64
}

// DefaultOptions returns the tuned default thresholds.
func DefaultOptions() Options {
	return Options{
		Proximity:           5,
		KeywordThreshold:    0.5,
		SimilarityThreshold: 0.6,
		TemplateThreshold:   0.85,
	}
}

// Engine decides whether candidate comments duplicate existing ones.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options. Zero or negative
// thresholds fall back to the defaults so a partially filled config
// cannot disable a layer by accident.
func NewEngine(opts Options) *Engine {
	defaults := DefaultOptions()
	if opts.Proximity <= 0 {
		opts.Proximity = defaults.Proximity
	}
	if opts.KeywordThreshold <= 0 {
		opts.KeywordThreshold = defaults.KeywordThreshold
	}
	if opts.SimilarityThreshold <= 0 {
		opts.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if opts.TemplateThreshold <= 0 {
		opts.TemplateThreshold = defaults.TemplateThreshold
	}
	return &Engine{opts: opts}
}

// IsDuplicate reports whether the candidate is redundant with any of
// the existing comments. Only existing comments within the proximity
// window are considered; for each, the exact template match runs first
// (it never false-positives), then the fuzzy layers, any of which can
// declare a duplicate on its own.
func (e *Engine) IsDuplicate(candidate domain.CandidateComment, existing []domain.ExistingComment) bool {
	candTemplate := Templatize(candidate.Body)
	var candKeywords KeywordSet // computed lazily, most comparisons stop earlier

	for _, ec := range existing {
		if !e.withinProximity(candidate.Line, ec.Line) {
			continue
		}

		existingTemplate := Templatize(ec.Body)
		if candTemplate != "" && candTemplate == existingTemplate {
			return true
		}

		if candKeywords == nil {
			candKeywords = ExtractKeywords(candidate.Body)
		}
		if Jaccard(candKeywords, ExtractKeywords(ec.Body)) > e.opts.KeywordThreshold {
			return true
		}

		if Similarity(candidate.Body, ec.Body) > e.opts.SimilarityThreshold {
			return true
		}

		if Similarity(candTemplate, existingTemplate) > e.opts.TemplateThreshold {
			return true
		}
	}

	return false
}

// FilterDuplicates returns the candidates that are not redundant with
// existing comments, preserving order, together with the number dropped.
func (e *Engine) FilterDuplicates(candidates []domain.CandidateComment, existing []domain.ExistingComment) ([]domain.CandidateComment, int) {
	var unique []domain.CandidateComment
	dropped := 0
	for _, c := range candidates {
		if e.IsDuplicate(c, existing) {
			dropped++
			continue
		}
		unique = append(unique, c)
	}
	return unique, dropped
}

func (e *Engine) withinProximity(a, b int) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= e.opts.Proximity
}
