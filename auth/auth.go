package auth

import "context"

// TokenValidator validates a bearer token and returns the authenticated
// principal. HTTP middleware depends on this contract rather than on the
// token format, and stores the principal in the request context via authctx.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (any, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator interface.
//
//	validator := auth.TokenValidatorFunc(func(ctx context.Context, token string) (any, error) {
//	    return gw.Authenticate(ctx, token)
//	})
type TokenValidatorFunc func(ctx context.Context, token string) (any, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(ctx context.Context, token string) (any, error) {
	return f(ctx, token)
}
