package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/arrays"
	"github.com/kbukum/arraygate/auth/password"
	apperrors "github.com/kbukum/arraygate/errors"
	"github.com/kbukum/arraygate/gateway"
	"github.com/kbukum/arraygate/validation"
)

// Client-facing messages. Clients match on them, so they stay fixed.
const (
	msgRegistered         = "User registered successfully"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// toAppError maps domain errors to their HTTP form. Anything it does not
// recognise is returned unchanged and rendered as a 500.
func toAppError(err error) error {
	switch {
	case errors.Is(err, gateway.ErrUserExists):
		return apperrors.AlreadyExists(msgUserExists).WithCause(err)
	case errors.Is(err, gateway.ErrInvalidCredentials):
		return apperrors.Unauthorized(msgInvalidCredentials).WithCause(err)
	case errors.Is(err, password.ErrPasswordTooLong):
		return apperrors.InvalidInput("password", "must be at most 72 bytes").WithCause(err)
	case errors.Is(err, arrays.ErrEmptyInput):
		return apperrors.EmptyInput("numbers").WithCause(err)
	default:
		return err
	}
}

// bind decodes the JSON body into dst and validates it.
func bind(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.PayloadTooLarge(tooLarge.Limit).WithCause(err)
		}
		return apperrors.InvalidInput("body", "must be a valid JSON object").WithCause(err)
	}
	return validation.Validate(dst)
}
