// Package http holds the transport plumbing shared by every model
// provider adapter: typed errors, retry with backoff, response JSON
// extraction, and request/response logging.
package http

import "fmt"

// ErrorType represents the category of error that occurred.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeModelNotFound:
		return "model not found"
	default:
		return "unknown error"
	}
}

// Error represents a provider API error with additional context.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Retryable  bool
	Provider   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type.String(), e.Message, e.StatusCode)
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// IsRetryable returns true if the error is retryable.
func (e *Error) IsRetryable() bool {
	return e.Retryable
}

// MapStatusCode converts an HTTP status code and message into a typed
// error. Providers with non-standard codes (Anthropic's 529 overload)
// wrap this with their own cases first.
func MapStatusCode(provider string, statusCode int, message string) *Error {
	e := &Error{
		Message:    message,
		StatusCode: statusCode,
		Provider:   provider,
	}

	switch statusCode {
	case 401, 403:
		e.Type = ErrTypeAuthentication
	case 404:
		e.Type = ErrTypeModelNotFound
	case 429:
		e.Type = ErrTypeRateLimit
		e.Retryable = true
	case 400, 422:
		e.Type = ErrTypeInvalidRequest
	default:
		if statusCode >= 500 {
			e.Type = ErrTypeServiceUnavailable
			e.Retryable = true
		} else {
			e.Type = ErrTypeUnknown
		}
	}

	return e
}
