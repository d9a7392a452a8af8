package logging

import (
	"context"
	"log/slog"

	"avifwrap/internal/services"
)

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the structured logging key for per-conversion identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldInput is the structured logging key for the source image path.
	FieldInput = "input"
	// FieldErrorHint suggests the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	if input, ok := services.InputFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldInput, input))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
