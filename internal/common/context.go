package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID   contextKey = "request_id"
	ContextKeyInspectorID contextKey = "inspector_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithInspectorID adds the acting inspector's ID to the context
func WithInspectorID(ctx context.Context, inspectorID string) context.Context {
	return context.WithValue(ctx, ContextKeyInspectorID, inspectorID)
}

// InspectorIDFromContext extracts the inspector ID from context
func InspectorIDFromContext(ctx context.Context) string {
	if inspectorID, ok := ctx.Value(ContextKeyInspectorID).(string); ok {
		return inspectorID
	}
	return ""
}
