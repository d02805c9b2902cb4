package endpoint

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/component"
	apperrors "github.com/kbukum/arraygate/errors"
)

// Readiness returns a handler for readiness checks. A degraded component
// still accepts traffic; an unhealthy one gets the retryable
// SERVICE_UNAVAILABLE error body.
func Readiness(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if component.Overall(check(c.Request.Context(), checker)) == component.StatusUnhealthy {
			e := apperrors.ServiceUnavailable(serviceName + " is not ready").WithDetail("service", serviceName)
			c.AbortWithStatusJSON(e.HTTPStatus, e.ToResponse())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"service":   serviceName,
			"timestamp": now(),
		})
	}
}
