package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/photosafe/internal/errors"
	"github.com/allisson/photosafe/internal/httputil"
	userDomain "github.com/allisson/photosafe/internal/user/domain"
	userUseCase "github.com/allisson/photosafe/internal/user/usecase"
)

// BearerToken extracts the bearer token from the Authorization header.
// The "bearer" prefix is matched case-insensitively. Returns ("", false) when
// the header is missing, malformed, or carries an empty token.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	const bearerPrefix = "bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	plainToken := authHeader[len(bearerPrefix):]
	if plainToken == "" {
		return "", false
	}
	return plainToken, true
}

// AuthenticationMiddleware authenticates requests via a bearer token in the
// Authorization header and stores the resolved user in the request context.
//
// Unknown, expired and revoked tokens all produce the same 401 response; the
// auth use case collapses them into one error on purpose.
func AuthenticationMiddleware(authUseCase userUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken, ok := BearerToken(c)
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := authUseCase.Authenticate(c.Request.Context(), plainToken)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequesterFrom retrieves the authenticated user or writes a 401 response.
// Handlers behind AuthenticationMiddleware use this instead of re-checking the
// header; a missing user means the middleware was not mounted.
func RequesterFrom(c *gin.Context, logger *slog.Logger) (*userDomain.User, bool) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return nil, false
	}
	return user, true
}
