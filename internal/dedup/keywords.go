package dedup

import (
	"regexp"
	"strings"
)

// techVocab is the fixed technical vocabulary used for keyword
// extraction. Membership is checked on whole lowercase words.
var techVocab = wordSet(
	"race", "deadlock", "leak", "memory", "pointer", "nullpointer",
	"overflow", "underflow", "panic", "crash", "exception", "segfault",
	"injection", "sanitize", "escape", "security", "vulnerability",
	"secret", "password", "credential", "token", "auth",
	"authentication", "authorization", "encryption", "hash",
	"performance", "latency", "throughput", "allocation", "quadratic",
	"complexity", "blocking", "bottleneck", "cache", "caching",
	"concurrency", "concurrent", "goroutine", "thread", "mutex", "lock",
	"atomic", "synchronization", "channel", "context", "cancellation",
	"timeout", "retry", "backoff", "transaction", "rollback",
	"validation", "validate", "unchecked", "unhandled", "unsafe",
	"deprecated", "unused", "unreachable", "redundant", "duplicate",
	"hardcoded", "magic", "refactor", "readability", "maintainability",
	"nil", "null", "undefined", "boundary", "index", "bounds",
	"closure", "shadowing", "mutation", "immutable", "idempotent",
	"serialization", "deserialization", "marshal", "unmarshal",
	"encoding", "decoding", "injection", "sql", "xss", "csrf",
)

// Substrings whose presence in a word marks it as a keyword regardless
// of vocabulary membership. Substring matching deliberately widens
// recall: "errors", "debugging", "bugfix", "fixes" all qualify.
var keywordSubstrings = []string{"error", "bug", "fix", "issue"}

var (
	codeSpanRe   = regexp.MustCompile("`[^`]+`")
	callExprRe   = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\(`)
	capitalRe    = regexp.MustCompile(`\b[A-Z][A-Za-z0-9_]+\b`)
	dottedPathRe = regexp.MustCompile(`\b[A-Za-z_][A-Za-z0-9_]*\.[A-Za-z_][A-Za-z0-9_.]*\b`)
	wordRe       = regexp.MustCompile(`[a-zA-Z]+`)
)

// KeywordSet is a set of lowercase tokens extracted from a comment body.
type KeywordSet map[string]struct{}

// ExtractKeywords collects the technical terms and inline-code
// references from a comment body. The result is recomputed per
// comparison; runs handle at most a few hundred comments so caching
// buys nothing.
func ExtractKeywords(body string) KeywordSet {
	keywords := make(KeywordSet)
	if body == "" {
		return keywords
	}

	add := func(s string) {
		s = strings.ToLower(strings.Trim(s, "`(."))
		if s != "" {
			keywords[s] = struct{}{}
		}
	}

	for _, m := range codeSpanRe.FindAllString(body, -1) {
		add(m)
	}
	for _, m := range callExprRe.FindAllString(body, -1) {
		add(m)
	}
	for _, m := range capitalRe.FindAllString(body, -1) {
		// Sentence-initial English words are capitalized too; only keep
		// matches that read as identifiers, not ordinary words.
		lower := strings.ToLower(m)
		if _, ok := commonWords[lower]; ok {
			continue
		}
		if _, ok := langKeywords[lower]; ok {
			continue
		}
		add(m)
	}
	for _, m := range dottedPathRe.FindAllString(body, -1) {
		add(m)
	}

	for _, word := range wordRe.FindAllString(body, -1) {
		if len(word) <= 3 {
			continue
		}
		lower := strings.ToLower(word)
		if _, ok := techVocab[lower]; ok {
			keywords[lower] = struct{}{}
			continue
		}
		for _, sub := range keywordSubstrings {
			if strings.Contains(lower, sub) {
				keywords[lower] = struct{}{}
				break
			}
		}
	}

	return keywords
}

// Jaccard returns intersection size over union size of two keyword
// sets. An empty set shares nothing with any other set, so any empty
// input yields 0.
func Jaccard(a, b KeywordSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
