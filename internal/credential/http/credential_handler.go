// Package http provides HTTP handlers for hardware credential registration,
// management, and assertion verification.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/photosafe/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/photosafe/internal/credential/usecase"
	"github.com/allisson/photosafe/internal/httputil"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// CredentialHandler handles HTTP requests for hardware credential operations.
type CredentialHandler struct {
	credentialUseCase credentialUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(credentialUseCase credentialUseCase.CredentialUseCase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// credentialIDParam reads the credential_id path parameter. Credential ids
// are authenticator-assigned opaque strings, not UUIDs.
func credentialIDParam(c *gin.Context, logger *slog.Logger) (string, bool) {
	credentialID := c.Param("credential_id")
	if credentialID == "" {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("credential_id is required"),
			logger)
		return "", false
	}
	return credentialID, true
}

// BeginRegistrationHandler issues a registration challenge for the requester.
// POST /v1/credentials/registration/begin - Requires authentication.
func (h *CredentialHandler) BeginRegistrationHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	challenge, err := h.credentialUseCase.BeginRegistration(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChallengeToResponse(challenge))
}

// CompleteRegistrationHandler verifies the attestation and persists the
// credential.
// POST /v1/credentials/registration/complete - Requires authentication.
// Returns 201 Created with the credential metadata.
func (h *CredentialHandler) CompleteRegistrationHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.CompleteRegistrationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	attestation, err := base64.StdEncoding.DecodeString(req.Attestation)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 attestation: %w", err), h.logger)
		return
	}

	cred, err := h.credentialUseCase.CompleteRegistration(c.Request.Context(), user.ID, attestation)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(cred))
}

// ListHandler lists the requester's credentials, newest first.
// GET /v1/credentials - Requires authentication.
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	creds, err := h.credentialUseCase.List(c.Request.Context(), user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(creds))
}

// DeleteHandler removes the requester's credential.
// DELETE /v1/credentials/:credential_id - Requires authentication.
// Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	credentialID, ok := credentialIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), user.ID, credentialID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// BindCachedKeyHandler binds the requester's currently cached decryption key
// to the credential.
// POST /v1/credentials/:credential_id/bind - Requires authentication.
// Returns 204 No Content, or 422 when no key is cached.
func (h *CredentialHandler) BindCachedKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	credentialID, ok := credentialIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.credentialUseCase.BindCachedKey(c.Request.Context(), user.ID, credentialID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ChallengeHandler issues a one-time signing challenge for the credential.
// GET /v1/credentials/:credential_id/challenge - Requires authentication;
// rate limited.
func (h *CredentialHandler) ChallengeHandler(c *gin.Context) {
	if _, ok := userHTTP.RequesterFrom(c, h.logger); !ok {
		return
	}

	credentialID, ok := credentialIDParam(c, h.logger)
	if !ok {
		return
	}

	challenge, err := h.credentialUseCase.GenerateChallenge(c.Request.Context(), credentialID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapChallengeToResponse(challenge))
}

// VerifyAssertionHandler checks a signed challenge. On success the
// credential's bound cache key, if any, is restored server-side.
// POST /v1/credentials/:credential_id/verify - Requires authentication;
// rate limited. Returns 204 No Content.
func (h *CredentialHandler) VerifyAssertionHandler(c *gin.Context) {
	if _, ok := userHTTP.RequesterFrom(c, h.logger); !ok {
		return
	}

	credentialID, ok := credentialIDParam(c, h.logger)
	if !ok {
		return
	}

	var req dto.VerifyAssertionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	assertion, err := base64.StdEncoding.DecodeString(req.Assertion)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 assertion: %w", err), h.logger)
		return
	}

	if err := h.credentialUseCase.VerifyAssertion(c.Request.Context(), credentialID, assertion); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
