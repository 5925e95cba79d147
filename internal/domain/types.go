// Package domain holds the platform-agnostic types shared across the
// review pipeline. Nothing in this package performs I/O.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	FileStatusAdded    = "added"
	FileStatusModified = "modified"
	FileStatusRemoved  = "removed"
	FileStatusRenamed  = "renamed"
)

// Severity classifies how serious a review comment is.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ParseSeverity normalizes a model-supplied severity string. Unknown or
// empty values default to medium; models are not trusted to emit the
// enum exactly.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityLow:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// FileChange captures the change for a single file in a pull request or
// local diff.
type FileChange struct {
	Path    string
	OldPath string
	Status  string
	Patch   string // raw unified diff text, may be empty for binary files
}

// CandidateComment is a review comment proposed by a model adapter.
// The Line value is untrusted and must be validated against the diff's
// commentable line set before the comment is considered placeable.
type CandidateComment struct {
	Line     int      `json:"line"`
	Body     string   `json:"body"`
	Severity Severity `json:"severity,omitempty"`
}

// ExistingComment is a review comment already present on the pull
// request. Read-only input to deduplication.
type ExistingComment struct {
	ID     int64
	Line   int
	Body   string
	Author string
}

// Review is the per-file output from a model adapter.
type Review struct {
	Provider string
	Model    string
	Summary  string
	Comments []CandidateComment
}

// Fingerprint identifies a posted comment deterministically so the
// run-history store can record what was posted without storing bodies
// twice.
type Fingerprint string

// CommentFingerprint derives a stable fingerprint for a comment at a
// location.
func CommentFingerprint(path string, c CandidateComment) Fingerprint {
	payload := fmt.Sprintf("%s|%d|%s|%s", path, c.Line, c.Severity, c.Body)
	sum := sha256.Sum256([]byte(payload))
	return Fingerprint(hex.EncodeToString(sum[:]))
}
