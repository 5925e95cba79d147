package review

import "context"

// Logger provides structured logging for the review use case. The
// orchestrator logs skip decisions and per-file failures with fields
// rather than failing the whole run.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) LogInfo(context.Context, string, map[string]interface{})    {}
func (NopLogger) LogWarning(context.Context, string, map[string]interface{}) {}
