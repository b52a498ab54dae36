package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/photosafe/internal/httputil"
	"github.com/allisson/photosafe/internal/user/http/dto"
	userUseCase "github.com/allisson/photosafe/internal/user/usecase"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// UserHandler handles HTTP requests for user account operations.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a new user account.
// POST /v1/users - No authentication required.
// Returns 201 Created with the account metadata.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Create(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// GetMeHandler returns the authenticated user's account.
// GET /v1/users/me - Requires authentication.
func (h *UserHandler) GetMeHandler(c *gin.Context) {
	user, ok := RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// SetupEncryptionHandler attaches client-generated key material to the
// authenticated account and moves it to the envelope scheme.
// PUT /v1/users/me/encryption - Requires authentication.
func (h *UserHandler) SetupEncryptionHandler(c *gin.Context) {
	user, ok := RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.SetupEncryptionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	publicKey, err := base64.StdEncoding.DecodeString(req.PublicKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 public_key: %w", err), h.logger)
		return
	}
	encryptedDEK, err := base64.StdEncoding.DecodeString(req.EncryptedDEK)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 encrypted_dek: %w", err), h.logger)
		return
	}
	dekSalt, err := base64.StdEncoding.DecodeString(req.DEKSalt)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 dek_salt: %w", err), h.logger)
		return
	}

	var recoveryEncryptedDEK []byte
	if req.RecoveryEncryptedDEK != "" {
		recoveryEncryptedDEK, err = base64.StdEncoding.DecodeString(req.RecoveryEncryptedDEK)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 recovery_encrypted_dek: %w", err), h.logger)
			return
		}
	}

	updated, err := h.userUseCase.SetupEncryption(
		c.Request.Context(),
		user.ID,
		publicKey,
		encryptedDEK,
		dekSalt,
		recoveryEncryptedDEK,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(updated))
}
