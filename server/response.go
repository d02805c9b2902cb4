package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/arraygate/errors"
	"github.com/kbukum/arraygate/logger"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status
// and structured body are derived from it; otherwise a generic 500 is sent
// and the cause is logged. The cause never reaches the client.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed", logger.ErrorFields(c.FullPath(), err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response with body rendered as JSON as-is.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}
