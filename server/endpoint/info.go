package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// InfoResponse is the body of GET /info.
type InfoResponse struct {
	Service     string       `json:"service"`
	Environment string       `json:"environment,omitempty"`
	Build       version.Info `json:"build"`
	Uptime      string       `json:"uptime"`
	Timestamp   string       `json:"timestamp"`
}

// Info returns a handler that reports service and build information.
func Info(serviceName, environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, InfoResponse{
			Service:     serviceName,
			Environment: environment,
			Build:       version.Get(),
			Uptime:      time.Since(startTime).Round(time.Second).String(),
			Timestamp:   now(),
		})
	}
}
