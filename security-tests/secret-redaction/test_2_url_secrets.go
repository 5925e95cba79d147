// TEST: secrets carried in URLs.
// Expected: error messages containing these URLs are scrubbed by the
// URL redaction pass before they reach the process log.
package redaction

const (
	AzureEndpoint = "https://example.openai.azure.com/openai/deployments/d/chat/completions?api-version=2024-06-01&api-key=0123456789abcdef"
	SignedURL     = "https://storage.example.com/artifact?access_token=abcdef123456&expires=1735689600"
	GenericKeyURL = "https://api.example.com/v1/thing?key=abc123&format=json"
)
