package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/arraygate/auth"
	"github.com/kbukum/arraygate/auth/authctx"
	apperrors "github.com/kbukum/arraygate/errors"
	"github.com/kbukum/arraygate/logger"
	"github.com/kbukum/arraygate/observability"
)

// TokenQueryParam is the query parameter protected routes read the token from.
const TokenQueryParam = "token"

// AuthConfig configures the authentication middleware.
type AuthConfig struct {
	// Validator resolves a token to a principal.
	Validator auth.TokenValidator

	// AcceptBearerHeader allows "Authorization: Bearer <token>" when the
	// query parameter is absent.
	AcceptBearerHeader bool
}

// Auth returns a gin middleware that authenticates the request before any
// handler runs. The token comes from the "token" query parameter, or the
// bearer header as a fallback. Every failure produces the same
// 401 INVALID_TOKEN response.
//
// On success the principal is stored with authctx on the request context.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cfg.AcceptBearerHeader)
		if token == "" {
			c.AbortWithStatusJSON(apperrors.InvalidToken().HTTPStatus, apperrors.InvalidToken().ToResponse())
			return
		}

		ctx := c.Request.Context()
		principal, err := cfg.Validator.ValidateToken(ctx, token)
		if err != nil {
			appErr := apperrors.InvalidToken().WithCause(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}

		ctx = authctx.Set(ctx, principal)
		if user, ok := authctx.Subject(ctx); ok {
			ctx = logger.ContextWithUserID(ctx, user)
			observability.SetSpanAttribute(ctx, observability.AttrUserID, user)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context, acceptBearer bool) string {
	if token := c.Query(TokenQueryParam); token != "" {
		return token
	}
	if !acceptBearer {
		return ""
	}
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
