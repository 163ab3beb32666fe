package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// SessionIDContextKey is the context key for the visitor's session ID
	SessionIDContextKey ContextKey = "sessionID"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of hex characters in a trace ID
	TraceIDLength = 32
)

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SetSessionID stores the visitor's session ID in the context.
func SetSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDContextKey, id)
}

// GetSessionID retrieves the session ID placed in the context by the
// session middleware.
func GetSessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDContextKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// generateTraceID returns a random version 4 UUID as 32 hex characters.
func generateTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
