package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
	"github.com/allisson/photosafe/internal/httputil"
	"github.com/allisson/photosafe/internal/user/http/dto"
	userUseCase "github.com/allisson/photosafe/internal/user/usecase"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// TokenHandler handles HTTP requests for bearer token operations.
type TokenHandler struct {
	authUseCase userUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(authUseCase userUseCase.AuthUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// IssueTokenHandler issues a new bearer token for a user.
// POST /v1/auth/tokens - No authentication required; rate limited per IP.
// Returns 201 Created with the token and its expiration time.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user_id format: must be a valid UUID"),
			h.logger)
		return
	}

	output, err := h.authUseCase.IssueToken(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		Token:     output.PlainToken,
		ExpiresAt: output.ExpiresAt,
	})
}

// RevokeTokenHandler revokes the bearer token presented in the request.
// DELETE /v1/auth/tokens - Requires authentication.
// Returns 204 No Content.
func (h *TokenHandler) RevokeTokenHandler(c *gin.Context) {
	plainToken, ok := BearerToken(c)
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	if err := h.authUseCase.RevokeToken(c.Request.Context(), plainToken); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
