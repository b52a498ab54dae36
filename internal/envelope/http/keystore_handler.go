// Package http provides HTTP handlers for envelope key custody: item keys,
// shares, folder key maps, and the legacy migration.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	"github.com/allisson/photosafe/internal/envelope/http/dto"
	envelopeUseCase "github.com/allisson/photosafe/internal/envelope/usecase"
	"github.com/allisson/photosafe/internal/httputil"
	userHTTP "github.com/allisson/photosafe/internal/user/http"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// KeyStoreHandler handles HTTP requests for envelope key custody operations.
type KeyStoreHandler struct {
	keyStoreUseCase envelopeUseCase.KeyStoreUseCase
	logger          *slog.Logger
}

// NewKeyStoreHandler creates a new key store handler with required dependencies.
func NewKeyStoreHandler(keyStoreUseCase envelopeUseCase.KeyStoreUseCase, logger *slog.Logger) *KeyStoreHandler {
	return &KeyStoreHandler{
		keyStoreUseCase: keyStoreUseCase,
		logger:          logger,
	}
}

// uuidParam parses a UUID path parameter by name.
func uuidParam(c *gin.Context, name string, logger *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid %s format: must be a valid UUID", name),
			logger)
		return uuid.Nil, false
	}
	return id, true
}

// UploadKeyHandler stores the owner's wrap of an item's content key.
// POST /v1/items/:item_id/key - Requires authentication; owner-only.
// Returns 201 Created, or 409 Conflict when the item already has a key.
func (h *KeyStoreHandler) UploadKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	itemID, ok := uuidParam(c, "item_id", h.logger)
	if !ok {
		return
	}

	var req dto.UploadKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	encryptedKey, err := base64.StdEncoding.DecodeString(req.EncryptedKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 encrypted_key: %w", err), h.logger)
		return
	}

	var thumbnailEncryptedKey []byte
	if req.ThumbnailEncryptedKey != "" {
		thumbnailEncryptedKey, err = base64.StdEncoding.DecodeString(req.ThumbnailEncryptedKey)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 thumbnail_encrypted_key: %w", err), h.logger)
			return
		}
	}

	key, err := h.keyStoreUseCase.UploadKey(c.Request.Context(), itemID, user.ID, encryptedKey, thumbnailEncryptedKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapItemKeyToResponse(key))
}

// GetKeyHandler returns the wrapped key material appropriate for the
// requester: the owner's wraps for owners, the recipient's share for
// recipients.
// GET /v1/items/:item_id/key - Requires authentication.
func (h *KeyStoreHandler) GetKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	itemID, ok := uuidParam(c, "item_id", h.logger)
	if !ok {
		return
	}

	material, err := h.keyStoreUseCase.GetKey(c.Request.Context(), itemID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyMaterialToResponse(material))
}

// ShareHandler grants a recipient access to an item. Re-sharing replaces the
// recipient's wrapped key.
// POST /v1/items/:item_id/shares - Requires authentication; owner-only.
func (h *KeyStoreHandler) ShareHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	itemID, ok := uuidParam(c, "item_id", h.logger)
	if !ok {
		return
	}

	var req dto.ShareKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid recipient_id format: must be a valid UUID"),
			h.logger)
		return
	}

	encryptedKey, err := base64.StdEncoding.DecodeString(req.EncryptedKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 encrypted_key: %w", err), h.logger)
		return
	}

	share, err := h.keyStoreUseCase.Share(c.Request.Context(), itemID, user.ID, recipientID, encryptedKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapSharedKeyToResponse(share))
}

// ListSharesHandler lists the shares on an item.
// GET /v1/items/:item_id/shares - Requires authentication; owner-only.
func (h *KeyStoreHandler) ListSharesHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	itemID, ok := uuidParam(c, "item_id", h.logger)
	if !ok {
		return
	}

	shares, err := h.keyStoreUseCase.ListShares(c.Request.Context(), itemID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSharesToListResponse(shares))
}

// RevokeHandler removes a recipient's share on an item.
// DELETE /v1/items/:item_id/shares/:recipient_id - Requires authentication;
// owner-only. Returns 204 No Content.
func (h *KeyStoreHandler) RevokeHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	itemID, ok := uuidParam(c, "item_id", h.logger)
	if !ok {
		return
	}

	recipientID, ok := uuidParam(c, "recipient_id", h.logger)
	if !ok {
		return
	}

	if err := h.keyStoreUseCase.Revoke(c.Request.Context(), itemID, user.ID, recipientID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// CreateFolderKeyHandler creates a folder's key map with the creator's own
// wrap as its first entry.
// POST /v1/folders/:folder_id/key - Requires authentication.
func (h *KeyStoreHandler) CreateFolderKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	folderID, ok := uuidParam(c, "folder_id", h.logger)
	if !ok {
		return
	}

	var req dto.CreateFolderKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(req.WrappedKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 wrapped_key: %w", err), h.logger)
		return
	}

	folderKey, err := h.keyStoreUseCase.CreateFolderKey(c.Request.Context(), folderID, user.ID, wrappedKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapFolderKeyToResponse(folderKey))
}

// GetFolderKeyHandler returns the requester's own wrap from the folder key
// map. The full map is never handed out.
// GET /v1/folders/:folder_id/key - Requires authentication.
func (h *KeyStoreHandler) GetFolderKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	folderID, ok := uuidParam(c, "folder_id", h.logger)
	if !ok {
		return
	}

	material, err := h.keyStoreUseCase.GetFolderKey(c.Request.Context(), folderID, user.ID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFolderKeyMaterialToResponse(material))
}

// ShareFolderKeyHandler adds or replaces a member's wrap in the folder key
// map.
// PUT /v1/folders/:folder_id/members/:member_id - Requires authentication;
// creator-only. Returns 204 No Content.
func (h *KeyStoreHandler) ShareFolderKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	folderID, ok := uuidParam(c, "folder_id", h.logger)
	if !ok {
		return
	}

	memberID, ok := uuidParam(c, "member_id", h.logger)
	if !ok {
		return
	}

	var req dto.ShareFolderKeyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	wrappedKey, err := base64.StdEncoding.DecodeString(req.WrappedKey)
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 wrapped_key: %w", err), h.logger)
		return
	}

	if err := h.keyStoreUseCase.ShareFolderKey(c.Request.Context(), folderID, user.ID, memberID, wrappedKey); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// RevokeFolderKeyHandler removes a member's wrap from the folder key map.
// DELETE /v1/folders/:folder_id/members/:member_id - Requires authentication;
// creator-only. Returns 204 No Content.
func (h *KeyStoreHandler) RevokeFolderKeyHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	folderID, ok := uuidParam(c, "folder_id", h.logger)
	if !ok {
		return
	}

	memberID, ok := uuidParam(c, "member_id", h.logger)
	if !ok {
		return
	}

	if err := h.keyStoreUseCase.RevokeFolderKey(c.Request.Context(), folderID, user.ID, memberID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// MigrateBatchHandler moves a batch of the requester's legacy items to
// envelope mode. Per-item failures are reported in the response body and
// never abort the rest of the batch.
// POST /v1/migrations/envelope - Requires authentication.
func (h *KeyStoreHandler) MigrateBatchHandler(c *gin.Context) {
	user, ok := userHTTP.RequesterFrom(c, h.logger)
	if !ok {
		return
	}

	var req dto.MigrateBatchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	inputs := make([]envelopeDomain.MigrateItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, err := uuid.Parse(item.ItemID)
		if err != nil {
			httputil.HandleValidationErrorGin(c,
				fmt.Errorf("invalid item_id format: must be a valid UUID"),
				h.logger)
			return
		}

		encryptedKey, err := base64.StdEncoding.DecodeString(item.EncryptedKey)
		if err != nil {
			httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 encrypted_key: %w", err), h.logger)
			return
		}

		var thumbnailEncryptedKey []byte
		if item.ThumbnailEncryptedKey != "" {
			thumbnailEncryptedKey, err = base64.StdEncoding.DecodeString(item.ThumbnailEncryptedKey)
			if err != nil {
				httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid base64 thumbnail_encrypted_key: %w", err), h.logger)
				return
			}
		}

		inputs = append(inputs, envelopeDomain.MigrateItemInput{
			ItemID:                itemID,
			EncryptedKey:          encryptedKey,
			ThumbnailEncryptedKey: thumbnailEncryptedKey,
		})
	}

	output, err := h.keyStoreUseCase.MigrateBatch(c.Request.Context(), user.ID, inputs)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapMigrateBatchToResponse(output))
}
