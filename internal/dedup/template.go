package dedup

import (
	"regexp"
	"strings"
)

// commonWords are ordinary English words that survive templatization.
// Replacing these would collapse every comment to the same template and
// destroy precision of the exact-match layer.
var commonWords = wordSet(
	"a", "an", "the", "this", "that", "these", "those", "it", "its",
	"is", "are", "was", "be", "been", "being", "has", "have", "had",
	"should", "would", "could", "can", "may", "might", "must", "will",
	"not", "no", "never", "always", "also", "only", "both", "each",
	"and", "or", "but", "so", "as", "at", "by", "from", "into", "of",
	"on", "to", "with", "without", "here", "there", "when", "where",
	"which", "while", "before", "after", "instead", "rather",
	"avoid", "consider", "ensure", "make", "sure", "use", "using",
	"used", "check", "checked", "checking", "handle", "handled",
	"handling", "add", "added", "remove", "removed", "missing",
	"unused", "unnecessary", "redundant", "duplicate", "potential",
	"possible", "please", "note", "see", "like", "same", "different",
	"more", "less", "empty", "value", "values", "variable", "variables",
	"method", "methods", "function", "functions", "call", "calls",
	"line", "lines", "file", "files", "code", "comment", "comments",
	"name", "names", "parsing", "json", "string", "number", "better",
	"cause", "causes", "leak", "leaks", "instead",
)

// langKeywords are control-flow and declaration keywords across common
// languages; they read as identifiers but carry structure, so they are
// preserved verbatim.
var langKeywords = wordSet(
	"if", "else", "elif", "for", "while", "do", "switch", "case",
	"break", "continue", "return", "returns", "goto", "defer", "go",
	"select", "chan", "map", "range", "func", "function", "def",
	"lambda", "var", "let", "const", "static", "final", "new", "delete",
	"class", "struct", "interface", "enum", "type", "package", "import",
	"from", "export", "module", "namespace", "public", "private",
	"protected", "abstract", "virtual", "override", "try", "catch",
	"except", "finally", "throw", "throws", "raise", "yield", "async",
	"await", "void", "int", "float", "double", "bool", "boolean",
	"byte", "char", "true", "false", "nil", "null", "none", "undefined",
	"self", "this", "super",
)

var (
	tokenRe      = regexp.MustCompile(`[A-Za-z0-9_]+`)
	lowerCamelRe = regexp.MustCompile(`^[a-z]+(?:[A-Z][a-z0-9]*)+$`)
	upperCamelRe = regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]*)+$`)
	snakeCaseRe  = regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)+$`)
	allCapsRe    = regexp.MustCompile(`^[A-Z][A-Z0-9_]+$`)
	methodCallRe = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)\(`)
	envParseRe   = regexp.MustCompile("(?i)(json parsing on `?)([A-Z][A-Z0-9_]+)(`?)")
)

// Templatize replaces identifier-like tokens in a comment body with
// category placeholders, producing a comparison key that is identical
// for comments differing only in the specific names they mention.
//
// Pass order is deliberate and must not be reordered: the env-var rule
// runs before the general identifier pass (otherwise the ALL_CAPS rule
// consumes the token first), and the method-call rule runs after it so
// a plain lowercase method name behind a '.' is still visible.
func Templatize(body string) string {
	out := envParseRe.ReplaceAllString(body, "${1}{ENV_VAR}${3}")
	out = substituteIdentifiers(out)
	out = methodCallRe.ReplaceAllString(out, ".{method}(")
	return out
}

// substituteIdentifiers runs the general token pass. Tokens already
// sitting inside a {placeholder} are left alone so Templatize is
// idempotent on its own output.
func substituteIdentifiers(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	last := 0

	for _, loc := range tokenRe.FindAllStringIndex(s, -1) {
		start, end := loc[0], loc[1]
		b.WriteString(s[last:start])
		b.WriteString(classifyToken(s, start, end))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

func classifyToken(s string, start, end int) string {
	token := s[start:end]

	// Inside an existing placeholder: keep as-is.
	if start > 0 && end < len(s) && s[start-1] == '{' && s[end] == '}' {
		return token
	}

	lower := strings.ToLower(token)
	if _, ok := commonWords[lower]; ok {
		return token
	}
	if _, ok := langKeywords[lower]; ok {
		return token
	}

	switch {
	case lowerCamelRe.MatchString(token):
		return "{var}"
	case upperCamelRe.MatchString(token):
		return "{Class}"
	case snakeCaseRe.MatchString(token):
		return "{snake_var}"
	case allCapsRe.MatchString(token):
		return "{CONST}"
	default:
		return token
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
