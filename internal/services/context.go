package services

import "context"

type contextKey int

const (
	stageKey contextKey = iota
	requestIDKey
	sourceKey
)

func withString(ctx context.Context, key contextKey, value string) context.Context {
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func stringFrom(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}

// WithStage annotates ctx with the command stage (render, inspect, validate).
func WithStage(ctx context.Context, stage string) context.Context {
	return withString(ctx, stageKey, stage)
}

func StageFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, stageKey)
}

// WithRequestID annotates ctx with the run identifier recorded in history.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withString(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, requestIDKey)
}

// WithSource annotates ctx with the transcript being processed. Stdin is
// recorded as "-".
func WithSource(ctx context.Context, source string) context.Context {
	return withString(ctx, sourceKey, source)
}

func SourceFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, sourceKey)
}
