package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	inputKey     contextKey = "input"
)

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithInput annotates context with the source image being converted.
func WithInput(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, inputKey, path)
}

// InputFromContext returns the source image path if present.
func InputFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(inputKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
