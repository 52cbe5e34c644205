package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDKey is the context key for the authenticated account identifier.
const userIDKey contextKey = "user_id"

// ContextWithUserID adds the authenticated account identifier to the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated account identifier.
// Returns empty string if the request is unauthenticated.
func UserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// MustUserIDFromContext retrieves the authenticated account identifier.
// Panics if not present (use only when auth middleware has run).
func MustUserIDFromContext(ctx context.Context) string {
	id := UserIDFromContext(ctx)
	if id == "" {
		panic("user id not found in context - ensure auth middleware is applied")
	}
	return id
}
