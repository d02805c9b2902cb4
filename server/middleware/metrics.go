package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/observability"
)

// Metrics returns a gin middleware that feeds the HTTP instruments on m.
// Requests gin could not route are counted under "METHOD unmatched".
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		m.RequestStarted(ctx)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestFinished(ctx, c.Request.Method+" "+route, c.Writer.Status(), time.Since(start))
	}
}
