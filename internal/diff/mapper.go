package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineType represents the type of a line in a diff.
type LineType int

const (
	// LineContext represents an unchanged context line (starts with ' ').
	LineContext LineType = iota
	// LineAddition represents an added line (starts with '+').
	LineAddition
	// LineDeletion represents a deleted line (starts with '-').
	LineDeletion
)

// Line represents a single line in a diff hunk.
type Line struct {
	Type     LineType // The type of change
	Content  string   // The line content (without the prefix)
	NewLine  *int     // Line number in new file (nil for deletions)
	Position int      // Position in diff (1-indexed from first @@)
}

// Hunk represents a single @@ hunk in a unified diff.
type Hunk struct {
	OldStart int    // Starting line in old file
	OldLines int    // Number of lines from old file
	NewStart int    // Starting line in new file
	NewLines int    // Number of lines in new file
	Lines    []Line // The lines in this hunk
}

// ParsedDiff represents a parsed unified diff for a single file.
type ParsedDiff struct {
	Hunks []Hunk
}

// hunkHeaderRe matches "@@ -<oldStart>[,<oldCount>] +<newStart>[,<newCount>] @@".
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// Parse parses a unified diff string into a ParsedDiff.
// It handles standard git diff output including file headers.
// Malformed input never produces an error; unparseable hunks are dropped
// and the result is best-effort.
func Parse(patch string) (ParsedDiff, error) {
	if patch == "" {
		return ParsedDiff{}, nil
	}

	lines := strings.Split(patch, "\n")
	result := ParsedDiff{}

	var currentHunk *Hunk
	position := 0
	currentNewLine := 0

	for _, line := range lines {
		// Skip empty lines at end
		if line == "" {
			continue
		}

		// Skip file headers (diff --git, index, ---, +++)
		if strings.HasPrefix(line, "diff --git") ||
			strings.HasPrefix(line, "index ") ||
			strings.HasPrefix(line, "--- ") ||
			strings.HasPrefix(line, "+++ ") {
			continue
		}

		// Skip "\ No newline at end of file" markers
		if strings.HasPrefix(line, "\\ ") {
			continue
		}

		if strings.HasPrefix(line, "@@") {
			// Save previous hunk if exists
			if currentHunk != nil {
				result.Hunks = append(result.Hunks, *currentHunk)
				currentHunk = nil
			}

			// A malformed header leaves the cursor unset until the next
			// valid one; everything until then is ignored.
			hunk, ok := parseHunkHeader(line)
			if !ok {
				continue
			}

			currentHunk = &hunk
			currentNewLine = hunk.NewStart
			continue
		}

		// Skip if not in a hunk yet
		if currentHunk == nil {
			continue
		}

		position++
		diffLine := Line{
			Position: position,
		}

		switch line[0] {
		case '+':
			diffLine.Type = LineAddition
			diffLine.Content = line[1:]
			diffLine.NewLine = intPtr(currentNewLine)
			currentNewLine++
		case '-':
			// Deletions don't exist in the new file: no line number,
			// no cursor advance.
			diffLine.Type = LineDeletion
			diffLine.Content = line[1:]
			diffLine.NewLine = nil
		case ' ':
			diffLine.Type = LineContext
			diffLine.Content = line[1:]
			diffLine.NewLine = intPtr(currentNewLine)
			currentNewLine++
		default:
			// Treat unknown as context (handles edge cases)
			diffLine.Type = LineContext
			diffLine.Content = line
			diffLine.NewLine = intPtr(currentNewLine)
			currentNewLine++
		}

		currentHunk.Lines = append(currentHunk.Lines, diffLine)
	}

	// Don't forget the last hunk
	if currentHunk != nil {
		result.Hunks = append(result.Hunks, *currentHunk)
	}

	return result, nil
}

// CommentableLines returns the new-file line numbers on which an inline
// review comment may legally be attached: every added or context line,
// in file order. Deleted lines are never commentable. Malformed input
// degrades to an empty or partial result; callers treat an empty set as
// "skip this file", never as an error.
func CommentableLines(patch string) []int {
	parsed, _ := Parse(patch)
	var lines []int
	for _, hunk := range parsed.Hunks {
		for _, line := range hunk.Lines {
			if line.NewLine != nil {
				lines = append(lines, *line.NewLine)
			}
		}
	}
	return lines
}

// LineSet provides O(1) membership checks over a commentable line
// sequence.
type LineSet map[int]struct{}

// NewLineSet builds a LineSet from the output of CommentableLines.
func NewLineSet(lines []int) LineSet {
	set := make(LineSet, len(lines))
	for _, n := range lines {
		set[n] = struct{}{}
	}
	return set
}

// Contains reports whether the given new-file line is commentable.
func (s LineSet) Contains(line int) bool {
	_, ok := s[line]
	return ok
}

// FindPosition returns the diff position for a given new-side line number.
// Returns nil if the line is not in the diff (context-only file regions,
// deleted lines, or lines outside the diff).
// Position is 1-indexed from the first @@ hunk header.
func (pd ParsedDiff) FindPosition(newLineNumber int) *int {
	if newLineNumber <= 0 {
		return nil
	}

	for _, hunk := range pd.Hunks {
		for _, line := range hunk.Lines {
			if line.NewLine != nil && *line.NewLine == newLineNumber {
				return intPtr(line.Position)
			}
		}
	}

	return nil
}

// parseHunkHeader parses a hunk header line like "@@ -10,7 +10,8 @@ optional context".
func parseHunkHeader(line string) (Hunk, bool) {
	m := hunkHeaderRe.FindStringSubmatch(line)
	if m == nil {
		return Hunk{}, false
	}

	hunk := Hunk{
		OldStart: atoiDefault(m[1], 0),
		OldLines: atoiDefault(m[2], 1),
		NewStart: atoiDefault(m[3], 0),
		NewLines: atoiDefault(m[4], 1),
	}
	return hunk, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func intPtr(n int) *int {
	return &n
}
