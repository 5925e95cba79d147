package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/mhenry/prreview/internal/adapter/store/sqlite"
	"github.com/mhenry/prreview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err, "failed to create test store")

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func testRun(id string, ts time.Time) sqlite.Run {
	return sqlite.Run{
		RunID:      id,
		Timestamp:  ts.Truncate(time.Second),
		Kind:       "pr",
		Repository: "acme/widgets",
		PRNumber:   42,
		Provider:   "anthropic",
		Model:      "claude-sonnet-4-20250514",
	}
}

func TestStore_RecordRun_ListRuns(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	older := testRun("run-1", time.Now().Add(-time.Hour))
	newer := testRun("run-2", time.Now())

	require.NoError(t, s.RecordRun(ctx, older))
	require.NoError(t, s.RecordRun(ctx, newer))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)

	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, "run-1", runs[1].RunID)
	assert.Equal(t, "acme/widgets", runs[0].Repository)
	assert.Equal(t, 42, runs[0].PRNumber)
	assert.True(t, newer.Timestamp.Equal(runs[0].Timestamp))
}

func TestStore_RecordRun_DuplicateID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	run := testRun("run-1", time.Now())
	require.NoError(t, s.RecordRun(ctx, run))

	assert.Error(t, s.RecordRun(ctx, run))
}

func TestStore_RecordComments_CommentsForRun(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordRun(ctx, testRun("run-1", time.Now())))

	comment := domain.CandidateComment{Line: 12, Body: "Possible nil dereference.", Severity: domain.SeverityHigh}
	err := s.RecordComments(ctx, []sqlite.PostedComment{
		{
			RunID:       "run-1",
			Path:        "main.go",
			Line:        comment.Line,
			Severity:    string(comment.Severity),
			Fingerprint: domain.CommentFingerprint("main.go", comment),
			Body:        comment.Body,
		},
		{
			RunID:       "run-1",
			Path:        "util.go",
			Line:        3,
			Severity:    "low",
			Fingerprint: "fp-2",
			Body:        "Unused variable.",
		},
	})
	require.NoError(t, err)

	comments, err := s.CommentsForRun(ctx, "run-1")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "main.go", comments[0].Path)
	assert.Equal(t, 12, comments[0].Line)
	assert.Equal(t, domain.CommentFingerprint("main.go", comment), comments[0].Fingerprint)
	assert.Equal(t, "util.go", comments[1].Path)
}

func TestStore_RecordComments_Empty(t *testing.T) {
	s := setupTestStore(t)

	assert.NoError(t, s.RecordComments(context.Background(), nil))
}

func TestStore_RecordComments_UnknownRun(t *testing.T) {
	s := setupTestStore(t)

	err := s.RecordComments(context.Background(), []sqlite.PostedComment{
		{RunID: "missing", Path: "main.go", Line: 1, Severity: "low", Fingerprint: "fp", Body: "b"},
	})

	assert.Error(t, err)
}

func TestStore_ListRuns_Limit(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.RecordRun(ctx, testRun(
			string(rune('a'+i)),
			base.Add(time.Duration(i)*time.Minute),
		)))
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}
