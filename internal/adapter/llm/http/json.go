package http

import "strings"

// ExtractJSON pulls a JSON object out of a model response that may wrap
// it in markdown code fences or surround it with prose. Returns the
// empty string if no candidate object is found.
func ExtractJSON(response string) string {
	// Fenced ```json block first
	if start := strings.Index(response, "```json"); start != -1 {
		start += len("```json")
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	// Plain fenced block
	if start := strings.Index(response, "```"); start != -1 {
		start += 3
		if end := strings.Index(response[start:], "```"); end != -1 {
			return strings.TrimSpace(response[start : start+end])
		}
	}

	// Raw JSON: scan for a balanced top-level object
	if start := strings.Index(response, "{"); start != -1 {
		depth := 0
		for i := start; i < len(response); i++ {
			switch response[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return response[start : i+1]
				}
			}
		}
	}

	return ""
}
