package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "routeguard.logger"
	// navIDKey is the context key for the navigation event ID.
	navIDKey contextKey = "routeguard.nav_id"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithNavID adds a navigation event ID to the context.
func WithNavID(ctx context.Context, navID string) context.Context {
	return context.WithValue(ctx, navIDKey, navID)
}

// NavIDFromContext extracts the navigation event ID from context.
func NavIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(navIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context logger enriched with the navigation event ID
// when one is present.
func L(ctx context.Context) Logger {
	l := FromContext(ctx)
	if navID := NavIDFromContext(ctx); navID != "" {
		l = l.With("nav_id", navID)
	}
	return l
}
