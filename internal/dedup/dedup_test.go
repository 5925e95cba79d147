package dedup_test

import (
	"testing"

	"github.com/mhenry/prreview/internal/dedup"
	"github.com/mhenry/prreview/internal/domain"
)

func defaultEngine() *dedup.Engine {
	return dedup.NewEngine(dedup.DefaultOptions())
}

func TestDefaultOptions_PinnedThresholds(t *testing.T) {
	opts := dedup.DefaultOptions()
	if opts.Proximity != 5 {
		t.Errorf("Proximity = %d, want 5", opts.Proximity)
	}
	if opts.KeywordThreshold != 0.5 {
		t.Errorf("KeywordThreshold = %f, want 0.5", opts.KeywordThreshold)
	}
	if opts.SimilarityThreshold != 0.6 {
		t.Errorf("SimilarityThreshold = %f, want 0.6", opts.SimilarityThreshold)
	}
	if opts.TemplateThreshold != 0.85 {
		t.Errorf("TemplateThreshold = %f, want 0.85", opts.TemplateThreshold)
	}
}

func TestIsDuplicate_TemplateMatchDifferentIdentifiers(t *testing.T) {
	engine := defaultEngine()

	candidate := domain.CandidateComment{
		Line: 10,
		Body: "Unused variable `fooBar` should be removed.",
	}
	existing := []domain.ExistingComment{
		{ID: 1, Line: 12, Body: "Unused variable `bazQux` should be removed.", Author: "prr[bot]"},
	}

	if !engine.IsDuplicate(candidate, existing) {
		t.Error("expected duplicate: same template, different identifiers, within proximity")
	}
}

func TestIsDuplicate_FarApartNeverDuplicate(t *testing.T) {
	engine := defaultEngine()

	body := "Unchecked error return value from this call."
	candidate := domain.CandidateComment{Line: 10, Body: body}
	existing := []domain.ExistingComment{
		{ID: 1, Line: 100, Body: body, Author: "prr[bot]"},
	}

	if engine.IsDuplicate(candidate, existing) {
		t.Error("expected no duplicate: identical text but 90 lines apart")
	}
}

func TestIsDuplicate_EmptyExisting(t *testing.T) {
	engine := defaultEngine()
	candidate := domain.CandidateComment{Line: 10, Body: "anything at all"}

	if engine.IsDuplicate(candidate, nil) {
		t.Error("expected no duplicate against empty existing set")
	}
}

func TestIsDuplicate_KeywordOverlap(t *testing.T) {
	engine := defaultEngine()

	candidate := domain.CandidateComment{
		Line: 20,
		Body: "Possible SQL injection vulnerability when concatenating the query",
	}
	existing := []domain.ExistingComment{
		{ID: 7, Line: 22, Body: "This query string allows SQL injection and is a serious vulnerability", Author: "reviewer"},
	}

	if !engine.IsDuplicate(candidate, existing) {
		t.Error("expected duplicate via keyword overlap")
	}
}

func TestIsDuplicate_UnrelatedNearbyComments(t *testing.T) {
	engine := defaultEngine()

	candidate := domain.CandidateComment{
		Line: 10,
		Body: "Consider renaming this to clarify intent",
	}
	existing := []domain.ExistingComment{
		{ID: 3, Line: 11, Body: "Potential nil pointer dereference when config is absent", Author: "reviewer"},
	}

	if engine.IsDuplicate(candidate, existing) {
		t.Error("expected no duplicate for unrelated issues on nearby lines")
	}
}

func TestIsDuplicate_ProximityBoundary(t *testing.T) {
	engine := defaultEngine()
	body := "Unchecked error return value from this call."

	// Exactly at the window edge: compared.
	atEdge := []domain.ExistingComment{{ID: 1, Line: 15, Body: body}}
	if !engine.IsDuplicate(domain.CandidateComment{Line: 10, Body: body}, atEdge) {
		t.Error("expected duplicate at proximity boundary (distance 5)")
	}

	// One past the edge: skipped.
	pastEdge := []domain.ExistingComment{{ID: 1, Line: 16, Body: body}}
	if engine.IsDuplicate(domain.CandidateComment{Line: 10, Body: body}, pastEdge) {
		t.Error("expected no duplicate one line past the proximity window")
	}
}

func TestIsDuplicate_NearIdenticalBodies(t *testing.T) {
	engine := defaultEngine()

	candidate := domain.CandidateComment{
		Line: 30,
		Body: "The file handle is never closed after reading",
	}
	existing := []domain.ExistingComment{
		{ID: 9, Line: 31, Body: "The file handle is never closed after reading it", Author: "reviewer"},
	}

	if !engine.IsDuplicate(candidate, existing) {
		t.Error("expected duplicate for near-identical bodies")
	}
}

func TestIsDuplicate_EmptyCandidateBody(t *testing.T) {
	engine := defaultEngine()

	candidate := domain.CandidateComment{Line: 10, Body: ""}
	existing := []domain.ExistingComment{
		{ID: 2, Line: 10, Body: "A real comment about an actual problem in the code here", Author: "reviewer"},
	}

	if engine.IsDuplicate(candidate, existing) {
		t.Error("empty body must never match a non-empty one")
	}
}

func TestFilterDuplicates(t *testing.T) {
	engine := defaultEngine()

	existing := []domain.ExistingComment{
		{ID: 1, Line: 12, Body: "Unused variable `bazQux` should be removed.", Author: "prr[bot]"},
	}
	candidates := []domain.CandidateComment{
		{Line: 10, Body: "Unused variable `fooBar` should be removed."},
		{Line: 40, Body: "Missing timeout on the outbound request"},
	}

	unique, dropped := engine.FilterDuplicates(candidates, existing)
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(unique) != 1 || unique[0].Line != 40 {
		t.Errorf("unique = %v, want only the line-40 candidate", unique)
	}
}

func TestNewEngine_ZeroOptionsFallBackToDefaults(t *testing.T) {
	engine := dedup.NewEngine(dedup.Options{})

	candidate := domain.CandidateComment{Line: 10, Body: "Unused variable `fooBar` should be removed."}
	existing := []domain.ExistingComment{
		{ID: 1, Line: 12, Body: "Unused variable `bazQux` should be removed."},
	}
	if !engine.IsDuplicate(candidate, existing) {
		t.Error("zero-valued options should behave like defaults")
	}
}
