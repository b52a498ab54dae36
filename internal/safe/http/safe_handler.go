// Package http provides HTTP handlers for safe lifecycle and unlock session
// operations.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/httputil"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
	"github.com/allisson/photosafe/internal/safe/http/dto"
	safeUseCase "github.com/allisson/photosafe/internal/safe/usecase"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// SafeHandler handles HTTP requests for safe lifecycle operations.
type SafeHandler struct {
	safeUseCase safeUseCase.SafeUseCase
	logger      *slog.Logger
}

// NewSafeHandler creates a new safe handler with required dependencies.
func NewSafeHandler(safeUseCase safeUseCase.SafeUseCase, logger *slog.Logger) *SafeHandler {
	return &SafeHandler{
		safeUseCase: safeUseCase,
		logger:      logger,
	}
}

// safeIDParam parses the safe_id path parameter.
func safeIDParam(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	safeID, err := uuid.Parse(c.Param("safe_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid safe_id format: must be a valid UUID"),
			logger)
		return uuid.Nil, false
	}
	return safeID, true
}

// CreateHandler creates a new safe.
// POST /v1/safes - Requires authentication.
// Returns 201 Created with safe metadata (never the DEK ciphertext).
func (h *SafeHandler) CreateHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateSafeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	encryptedDEK, err := base64.StdEncoding.DecodeString(req.EncryptedDEK)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 encrypted_dek: %w", err), h.logger)
		return
	}

	var method safeDomain.UnlockMethod
	switch safeDomain.UnlockType(req.UnlockType) {
	case safeDomain.UnlockTypePassword:
		salt, decodeErr := base64.StdEncoding.DecodeString(req.Salt)
		if decodeErr != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 salt: %w", decodeErr), h.logger)
			return
		}
		method, err = safeDomain.NewPasswordUnlock(encryptedDEK, salt)
	case safeDomain.UnlockTypeHardware:
		method, err = safeDomain.NewHardwareUnlock(encryptedDEK, req.CredentialID)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
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

	safe, err := h.safeUseCase.Create(c.Request.Context(), &safeDomain.CreateSafeInput{
		OwnerID:              user.ID,
		Name:                 req.Name,
		Method:               method,
		RecoveryEncryptedDEK: recoveryEncryptedDEK,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSafeToResponse(safe))
}

// ListHandler lists the requester's safes, newest first.
// GET /v1/safes?offset=N&limit=N - Requires authentication.
func (h *SafeHandler) ListHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	safes, err := h.safeUseCase.List(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSafesToListResponse(safes))
}

// GetHandler retrieves a safe by ID.
// GET /v1/safes/:safe_id - Requires authentication; owner-only.
func (h *SafeHandler) GetHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	safe, err := h.safeUseCase.Get(c.Request.Context(), safeID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSafeToResponse(safe))
}

// RenameHandler renames a safe.
// PATCH /v1/safes/:safe_id - Requires authentication; owner-only.
func (h *SafeHandler) RenameHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	var req dto.RenameSafeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.safeUseCase.Rename(c.Request.Context(), safeID, user.ID, req.Name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteHandler deletes a safe along with its sessions and key rows.
// DELETE /v1/safes/:safe_id - Requires authentication; owner-only.
func (h *SafeHandler) DeleteHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.safeUseCase.Delete(c.Request.Context(), safeID, user.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// UnlockChallengeHandler returns the material needed to begin unlocking.
// GET /v1/safes/:safe_id/unlock-challenge - Requires authentication; owner-only;
// rate limited.
func (h *SafeHandler) UnlockChallengeHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	challenge, err := h.safeUseCase.GetUnlockChallenge(c.Request.Context(), safeID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUnlockChallengeToResponse(challenge))
}
