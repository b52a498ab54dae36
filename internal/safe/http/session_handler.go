package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/photosafe/internal/httputil"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
	"github.com/allisson/photosafe/internal/safe/http/dto"
	safeUseCase "github.com/allisson/photosafe/internal/safe/usecase"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// SessionHandler handles HTTP requests for unlock session operations.
type SessionHandler struct {
	sessionUseCase safeUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(sessionUseCase safeUseCase.SessionUseCase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// CompleteUnlockHandler finishes the unlock handshake and creates a session.
// POST /v1/safes/:safe_id/unlock - Requires authentication; owner-only; rate
// limited. Returns 201 Created with the session and its plain token, which is
// never shown again.
func (h *SessionHandler) CompleteUnlockHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	var req dto.CompleteUnlockRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	sessionEncryptedDEK, err := base64.StdEncoding.DecodeString(req.SessionEncryptedDEK)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 session_encrypted_dek: %w", err), h.logger)
		return
	}

	var hardwareAssertion []byte
	if req.HardwareAssertion != "" {
		hardwareAssertion, err = base64.StdEncoding.DecodeString(req.HardwareAssertion)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 hardware_assertion: %w", err), h.logger)
			return
		}
	}

	output, err := h.sessionUseCase.CompleteUnlock(c.Request.Context(), &safeDomain.CompleteUnlockInput{
		SafeID:              safeID,
		UserID:              user.ID,
		SessionEncryptedDEK: sessionEncryptedDEK,
		ExpiresHours:        req.ExpiresHours,
		HardwareAssertion:   hardwareAssertion,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.CompleteUnlockResponse{
		SessionToken: output.PlainToken,
		Session:      dto.MapSessionToResponse(output.Session),
	})
}

// GetSessionHandler retrieves the requester's live session on the safe.
// GET /v1/safes/:safe_id/session - Requires authentication.
// Returns 404 when the safe is locked for the requester.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	session, err := h.sessionUseCase.GetActiveSession(c.Request.Context(), safeID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSessionToResponse(session))
}

// LockHandler locks the safe for the requester, removing their sessions and
// cached key material.
// POST /v1/safes/:safe_id/lock - Requires authentication.
// Returns 204 No Content; locking an already-locked safe also succeeds.
func (h *SessionHandler) LockHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.sessionUseCase.Lock(c.Request.Context(), safeID, user.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// LockAllHandler locks the safe for every user, removing all sessions on it.
// POST /v1/safes/:safe_id/lock-all - Requires authentication; owner-only.
// Returns 204 No Content.
func (h *SessionHandler) LockAllHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	safeID, ok := safeIDParam(c, h.logger)
	if !ok {
		return
	}

	if err := h.sessionUseCase.LockAll(c.Request.Context(), safeID, user.ID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
