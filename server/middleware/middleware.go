package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior. The server
// applies these around its root handler, so they see every request,
// including ones gin answers with 404.
//
// Middleware that needs routing information (auth, tracing, metrics) is a
// gin.HandlerFunc instead and is installed on the engine or a route group.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the outermost
// (runs first on a request, last on a response).
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
