// Package authctx carries the authenticated principal through a request
// context.
//
// The auth middleware stores whatever the TokenValidator returned; for this
// service that is the username, read back with Subject. Get serves other
// principal types.
//
//	ctx = authctx.Set(ctx, "alice")
//	user, ok := authctx.Subject(ctx)
package authctx

import "context"

type contextKey struct{}

var principalKey = contextKey{}

// Set stores the authenticated principal in the context.
func Set(ctx context.Context, principal any) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// Get retrieves the typed principal from the context. It returns false when
// the principal is missing or of a different type.
func Get[T any](ctx context.Context) (T, bool) {
	principal, ok := ctx.Value(principalKey).(T)
	return principal, ok
}

// Subject returns the authenticated username, if any.
func Subject(ctx context.Context) (string, bool) {
	sub, ok := Get[string](ctx)
	return sub, ok && sub != ""
}
