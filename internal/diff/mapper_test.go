package diff_test

import (
	"sort"
	"testing"

	"github.com/mhenry/prreview/internal/diff"
)

// equalIntPtr compares two *int values for equality (test helper).
func equalIntPtr(a, b *int) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func intPtr(n int) *int {
	return &n
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParse_SingleHunk(t *testing.T) {
	patch := `@@ -10,3 +10,4 @@ func example() {
 context line
+added line
 another context
+second addition
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(parsed.Hunks))
	}

	hunk := parsed.Hunks[0]
	if hunk.NewStart != 10 {
		t.Errorf("expected NewStart=10, got %d", hunk.NewStart)
	}

	// Should have 4 lines: context, addition, context, addition
	if len(hunk.Lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(hunk.Lines))
	}
}

func TestParse_MultipleHunks(t *testing.T) {
	patch := `@@ -10,2 +10,3 @@ func first() {
 context
+added
@@ -20,2 +21,3 @@ func second() {
 context
+added
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed.Hunks) != 2 {
		t.Fatalf("expected 2 hunks, got %d", len(parsed.Hunks))
	}

	if parsed.Hunks[0].NewStart != 10 {
		t.Errorf("hunk 0: expected NewStart=10, got %d", parsed.Hunks[0].NewStart)
	}
	if parsed.Hunks[1].NewStart != 21 {
		t.Errorf("hunk 1: expected NewStart=21, got %d", parsed.Hunks[1].NewStart)
	}
}

func TestParse_DeletionsHaveNoNewLine(t *testing.T) {
	// Deleted file - all deletions
	patch := `@@ -1,3 +0,0 @@
-line one
-line two
-line three
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(parsed.Hunks))
	}

	for i, line := range parsed.Hunks[0].Lines {
		if line.Type != diff.LineDeletion {
			t.Errorf("line %d: expected Deletion, got %v", i, line.Type)
		}
		if line.NewLine != nil {
			t.Errorf("line %d: deletion should have nil NewLine", i)
		}
	}
}

func TestCommentableLines_SpecExample(t *testing.T) {
	// Context "line1" -> 1, added "line2" -> 2, context "line3" -> 3,
	// removed "line4" not counted, context "line5" -> 4.
	patch := "@@ -1,3 +1,4 @@\n line1\n+line2\n line3\n-line4\n line5"

	got := diff.CommentableLines(patch)
	want := []int{1, 2, 3, 4}
	if !equalInts(got, want) {
		t.Errorf("CommentableLines() = %v, want %v", got, want)
	}
}

func TestCommentableLines_Empty(t *testing.T) {
	if got := diff.CommentableLines(""); len(got) != 0 {
		t.Errorf("CommentableLines(\"\") = %v, want empty", got)
	}
}

func TestCommentableLines_DeletionsOnly(t *testing.T) {
	patch := `@@ -1,3 +0,0 @@
-line one
-line two
-line three
`

	if got := diff.CommentableLines(patch); len(got) != 0 {
		t.Errorf("CommentableLines() = %v, want empty for pure deletion", got)
	}
}

func TestCommentableLines_MultipleHunks(t *testing.T) {
	patch := `@@ -10,2 +10,3 @@ func first() {
 context 10
+added 11
@@ -20,2 +21,3 @@ func second() {
 context 21
+added 22
`

	got := diff.CommentableLines(patch)
	want := []int{10, 11, 21, 22}
	if !equalInts(got, want) {
		t.Errorf("CommentableLines() = %v, want %v", got, want)
	}
}

func TestCommentableLines_MalformedHeaderUnsetsCursor(t *testing.T) {
	// The broken header must not set the cursor: its body lines are
	// ignored until the next valid header.
	patch := `@@ not a real header @@
 orphan context
+orphan addition
@@ -5,2 +5,3 @@
 context 5
+added 6
`

	got := diff.CommentableLines(patch)
	want := []int{5, 6}
	if !equalInts(got, want) {
		t.Errorf("CommentableLines() = %v, want %v", got, want)
	}
}

func TestCommentableLines_LinesBeforeFirstHeaderIgnored(t *testing.T) {
	patch := `+stray addition
 stray context
@@ -1,1 +1,2 @@
 kept
+new
`

	got := diff.CommentableLines(patch)
	want := []int{1, 2}
	if !equalInts(got, want) {
		t.Errorf("CommentableLines() = %v, want %v", got, want)
	}
}

func TestCommentableLines_NonDecreasingWithinHunks(t *testing.T) {
	patch := `@@ -1,5 +1,6 @@
 one
-two
+two replaced
 three
+inserted
 four
@@ -30,2 +31,3 @@
 thirty
+thirty-one
`

	got := diff.CommentableLines(patch)
	if !sort.IntsAreSorted(got) {
		t.Errorf("CommentableLines() = %v, expected sorted output", got)
	}

	// Every returned line must correspond to an added or context line.
	parsed, _ := diff.Parse(patch)
	valid := make(map[int]bool)
	for _, hunk := range parsed.Hunks {
		for _, line := range hunk.Lines {
			if line.Type != diff.LineDeletion && line.NewLine != nil {
				valid[*line.NewLine] = true
			}
		}
	}
	for _, n := range got {
		if !valid[n] {
			t.Errorf("line %d is not an added/context line", n)
		}
	}
}

func TestLineSet_Contains(t *testing.T) {
	set := diff.NewLineSet([]int{1, 2, 3, 4})

	if !set.Contains(2) {
		t.Error("expected Contains(2) = true")
	}
	if set.Contains(5) {
		t.Error("expected Contains(5) = false")
	}
}

func TestParsedDiff_FindPosition_InDiff(t *testing.T) {
	patch := `@@ -10,3 +10,4 @@ func example() {
 context line 10
+added line 11
 context line 12
+added line 13
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name       string
		lineNumber int
		wantPos    *int
	}{
		{"context line 10", 10, intPtr(1)},
		{"added line 11", 11, intPtr(2)},
		{"context line 12", 12, intPtr(3)},
		{"added line 13", 13, intPtr(4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsed.FindPosition(tt.lineNumber)
			if !equalIntPtr(got, tt.wantPos) {
				t.Errorf("FindPosition(%d) = %v, want %v", tt.lineNumber, got, tt.wantPos)
			}
		})
	}
}

func TestParsedDiff_FindPosition_NotInDiff(t *testing.T) {
	patch := `@@ -10,2 +10,3 @@ func example() {
 context line 10
+added line 11
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	for _, lineNumber := range []int{5, 20, 0, -1} {
		if got := parsed.FindPosition(lineNumber); got != nil {
			t.Errorf("FindPosition(%d) = %v, want nil", lineNumber, *got)
		}
	}
}

func TestParse_NoNewlineAtEOF(t *testing.T) {
	patch := `@@ -1,2 +1,2 @@
 line one
-line two
\ No newline at end of file
+line two modified
\ No newline at end of file
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(parsed.Hunks))
	}

	// The "\ No newline" markers must not shift the cursor.
	got := diff.CommentableLines(patch)
	want := []int{1, 2}
	if !equalInts(got, want) {
		t.Errorf("CommentableLines() = %v, want %v", got, want)
	}
}

func TestParse_WithFileHeaders(t *testing.T) {
	// Real diff with git headers
	patch := `diff --git a/file.go b/file.go
index 1234567..abcdefg 100644
--- a/file.go
+++ b/file.go
@@ -10,3 +10,4 @@ func example() {
 context
+added
 more context
`

	parsed, err := diff.Parse(patch)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(parsed.Hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(parsed.Hunks))
	}

	// Position should start from @@ line, not file headers
	pos := parsed.FindPosition(10)
	if !equalIntPtr(pos, intPtr(1)) {
		t.Errorf("FindPosition(10) = %v, want 1", pos)
	}
}
