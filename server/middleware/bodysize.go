package middleware

import "net/http"

// BodySizeLimit caps every request body at limit bytes. Reading past it
// fails with *http.MaxBytesError, which handlers answer with 413.
func BodySizeLimit(limit int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
