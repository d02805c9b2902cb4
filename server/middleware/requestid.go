package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kbukum/arraygate/logger"
)

// HeaderRequestID carries the request id on requests and responses.
const HeaderRequestID = "X-Request-Id"

// maxRequestIDLen bounds a caller-supplied id before it reaches the logs.
const maxRequestIDLen = 128

// RequestID ensures every request has an id. A caller-supplied
// X-Request-Id is kept; otherwise a UUID is generated. The id is echoed on
// the response and attached to the request context for logging.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderRequestID)
			if id == "" || len(id) > maxRequestIDLen {
				id = uuid.NewString()
				r.Header.Set(HeaderRequestID, id)
			}
			w.Header().Set(HeaderRequestID, id)
			next.ServeHTTP(w, r.WithContext(logger.ContextWithRequestID(r.Context(), id)))
		})
	}
}
