package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	"github.com/allisson/photosafe/internal/envelope/http/dto"
)

var (
	testEncryptedKey = []byte("wrapped-content-key-----")
	testThumbnailKey = []byte("wrapped-thumbnail-key---")
)

func setItemIDParam(c *gin.Context, itemID uuid.UUID) {
	c.Params = gin.Params{{Key: "item_id", Value: itemID.String()}}
}

func TestKeyStoreHandler_UploadKeyHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		key, err := envelopeDomain.NewItemKey(itemID, user.ID, testEncryptedKey, testThumbnailKey)
		require.NoError(t, err)

		request := dto.UploadKeyRequest{
			EncryptedKey:          base64.StdEncoding.EncodeToString(testEncryptedKey),
			ThumbnailEncryptedKey: base64.StdEncoding.EncodeToString(testThumbnailKey),
		}

		mockUseCase.On("UploadKey", mock.Anything, itemID, user.ID, testEncryptedKey, testThumbnailKey).
			Return(key, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/key", request)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.UploadKeyHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ItemKeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, itemID.String(), response.ItemID)
		assert.True(t, response.HasThumbnailKey)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_NoThumbnailKey", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		key, err := envelopeDomain.NewItemKey(itemID, user.ID, testEncryptedKey, nil)
		require.NoError(t, err)

		request := dto.UploadKeyRequest{
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("UploadKey", mock.Anything, itemID, user.ID, testEncryptedKey, []byte(nil)).
			Return(key, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/key", request)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.UploadKeyHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ItemKeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.HasThumbnailKey)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_KeyAlreadyExists", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		request := dto.UploadKeyRequest{
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("UploadKey", mock.Anything, itemID, user.ID, testEncryptedKey, []byte(nil)).
			Return(nil, envelopeDomain.ErrItemKeyExists).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/key", request)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.UploadKeyHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidBase64", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/key", dto.UploadKeyRequest{
			EncryptedKey: "not base64!!!",
		})
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.UploadKeyHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NoAuthenticatedUser", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		itemID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/key", dto.UploadKeyRequest{
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		})
		setItemIDParam(c, itemID)

		handler.UploadKeyHandler(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestKeyStoreHandler_GetKeyHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetKey", mock.Anything, itemID, user.ID).
			Return(&envelopeDomain.KeyMaterial{
				EncryptedKey:          testEncryptedKey,
				ThumbnailEncryptedKey: testThumbnailKey,
				StorageMode:           envelopeDomain.StorageModeEnvelope,
				IsOwner:               true,
			}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/items/"+itemID.String()+"/key", nil)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.GetKeyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.KeyMaterialResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, base64.StdEncoding.EncodeToString(testEncryptedKey), response.EncryptedKey)
		assert.Equal(t, base64.StdEncoding.EncodeToString(testThumbnailKey), response.ThumbnailEncryptedKey)
		assert.Equal(t, string(envelopeDomain.StorageModeEnvelope), response.StorageMode)
		assert.True(t, response.IsOwner)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Success_NoThumbnailKey", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetKey", mock.Anything, itemID, user.ID).
			Return(&envelopeDomain.KeyMaterial{EncryptedKey: testEncryptedKey}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/items/"+itemID.String()+"/key", nil)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.GetKeyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "thumbnail_encrypted_key")

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_AccessDenied", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetKey", mock.Anything, itemID, user.ID).
			Return(nil, envelopeDomain.ErrAccessDenied).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/items/"+itemID.String()+"/key", nil)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.GetKeyHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidItemID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := testRequester(t)

		c, w := createTestContext(http.MethodGet, "/v1/items/nope/key", nil)
		authenticateContext(c, user)
		c.Params = gin.Params{{Key: "item_id", Value: "nope"}}

		handler.GetKeyHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestKeyStoreHandler_ShareHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())
		recipientID := uuid.Must(uuid.NewV7())

		share, err := envelopeDomain.NewSharedKey(itemID, user.ID, recipientID, testEncryptedKey)
		require.NoError(t, err)

		request := dto.ShareKeyRequest{
			RecipientID:  recipientID.String(),
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("Share", mock.Anything, itemID, user.ID, recipientID, testEncryptedKey).
			Return(share, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/shares", request)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.ShareHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.SharedKeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, recipientID.String(), response.RecipientID)
		assert.Equal(t, itemID.String(), response.ItemID)
		assert.NotContains(t, w.Body.String(), "encrypted_key")

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_InvalidRecipientID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/shares", dto.ShareKeyRequest{
			RecipientID:  "not-a-uuid",
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		})
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.ShareHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())
		recipientID := uuid.Must(uuid.NewV7())

		request := dto.ShareKeyRequest{
			RecipientID:  recipientID.String(),
			EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("Share", mock.Anything, itemID, user.ID, recipientID, testEncryptedKey).
			Return(nil, envelopeDomain.ErrNotItemOwner).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/items/"+itemID.String()+"/shares", request)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.ShareHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestKeyStoreHandler_ListSharesHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())

		share1, err := envelopeDomain.NewSharedKey(itemID, user.ID, uuid.Must(uuid.NewV7()), testEncryptedKey)
		require.NoError(t, err)
		share2, err := envelopeDomain.NewSharedKey(itemID, user.ID, uuid.Must(uuid.NewV7()), testEncryptedKey)
		require.NoError(t, err)

		mockUseCase.On("ListShares", mock.Anything, itemID, user.ID).
			Return([]*envelopeDomain.SharedKey{share1, share2}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/items/"+itemID.String()+"/shares", nil)
		authenticateContext(c, user)
		setItemIDParam(c, itemID)

		handler.ListSharesHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListSharesResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)

		mockUseCase.AssertExpectations(t)
	})
}

func TestKeyStoreHandler_RevokeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())
		recipientID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Revoke", mock.Anything, itemID, user.ID, recipientID).Return(nil).Once()

		c, w := createTestContext(http.MethodDelete, "/v1/items/"+itemID.String()+"/shares/"+recipientID.String(), nil)
		authenticateContext(c, user)
		c.Params = gin.Params{
			{Key: "item_id", Value: itemID.String()},
			{Key: "recipient_id", Value: recipientID.String()},
		}

		handler.RevokeHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_ShareNotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID := uuid.Must(uuid.NewV7())
		recipientID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Revoke", mock.Anything, itemID, user.ID, recipientID).
			Return(envelopeDomain.ErrShareNotFound).
			Once()

		c, w := createTestContext(http.MethodDelete, "/v1/items/"+itemID.String()+"/shares/"+recipientID.String(), nil)
		authenticateContext(c, user)
		c.Params = gin.Params{
			{Key: "item_id", Value: itemID.String()},
			{Key: "recipient_id", Value: recipientID.String()},
		}

		handler.RevokeHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestKeyStoreHandler_FolderKeyHandlers(t *testing.T) {
	t.Run("CreateFolderKey_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		folderID := uuid.Must(uuid.NewV7())

		folderKey, err := envelopeDomain.NewFolderKey(folderID, user.ID, testEncryptedKey)
		require.NoError(t, err)

		request := dto.CreateFolderKeyRequest{
			WrappedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("CreateFolderKey", mock.Anything, folderID, user.ID, testEncryptedKey).
			Return(folderKey, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/folders/"+folderID.String()+"/key", request)
		authenticateContext(c, user)
		c.Params = gin.Params{{Key: "folder_id", Value: folderID.String()}}

		handler.CreateFolderKeyHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.FolderKeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, folderID.String(), response.FolderID)
		assert.Equal(t, user.ID.String(), response.CreatorID)
		assert.Equal(t, 1, response.Members)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("GetFolderKey_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		folderID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetFolderKey", mock.Anything, folderID, user.ID).
			Return(&envelopeDomain.FolderKeyMaterial{WrappedKey: testEncryptedKey, IsOwner: true}, nil).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/folders/"+folderID.String()+"/key", nil)
		authenticateContext(c, user)
		c.Params = gin.Params{{Key: "folder_id", Value: folderID.String()}}

		handler.GetFolderKeyHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.WrappedKeyResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, base64.StdEncoding.EncodeToString(testEncryptedKey), response.WrappedKey)
		assert.True(t, response.IsOwner)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("GetFolderKey_Error_AccessDenied", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		folderID := uuid.Must(uuid.NewV7())

		mockUseCase.On("GetFolderKey", mock.Anything, folderID, user.ID).
			Return(nil, envelopeDomain.ErrAccessDenied).
			Once()

		c, w := createTestContext(http.MethodGet, "/v1/folders/"+folderID.String()+"/key", nil)
		authenticateContext(c, user)
		c.Params = gin.Params{{Key: "folder_id", Value: folderID.String()}}

		handler.GetFolderKeyHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("ShareFolderKey_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		folderID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())

		request := dto.ShareFolderKeyRequest{
			WrappedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
		}

		mockUseCase.On("ShareFolderKey", mock.Anything, folderID, user.ID, memberID, testEncryptedKey).
			Return(nil).
			Once()

		c, w := createTestContext(
			http.MethodPut,
			"/v1/folders/"+folderID.String()+"/members/"+memberID.String(),
			request,
		)
		authenticateContext(c, user)
		c.Params = gin.Params{
			{Key: "folder_id", Value: folderID.String()},
			{Key: "member_id", Value: memberID.String()},
		}

		handler.ShareFolderKeyHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("RevokeFolderKey_Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		folderID := uuid.Must(uuid.NewV7())
		memberID := uuid.Must(uuid.NewV7())

		mockUseCase.On("RevokeFolderKey", mock.Anything, folderID, user.ID, memberID).
			Return(nil).
			Once()

		c, w := createTestContext(
			http.MethodDelete,
			"/v1/folders/"+folderID.String()+"/members/"+memberID.String(),
			nil,
		)
		authenticateContext(c, user)
		c.Params = gin.Params{
			{Key: "folder_id", Value: folderID.String()},
			{Key: "member_id", Value: memberID.String()},
		}

		handler.RevokeFolderKeyHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})
}

func TestKeyStoreHandler_MigrateBatchHandler(t *testing.T) {
	t.Run("Success_PartialFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)
		user := testRequester(t)
		itemID1 := uuid.Must(uuid.NewV7())
		itemID2 := uuid.Must(uuid.NewV7())

		request := dto.MigrateBatchRequest{
			Items: []dto.MigrateItemRequest{
				{
					ItemID:       itemID1.String(),
					EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
				},
				{
					ItemID:                itemID2.String(),
					EncryptedKey:          base64.StdEncoding.EncodeToString(testEncryptedKey),
					ThumbnailEncryptedKey: base64.StdEncoding.EncodeToString(testThumbnailKey),
				},
			},
		}

		expectedInputs := []envelopeDomain.MigrateItemInput{
			{ItemID: itemID1, EncryptedKey: testEncryptedKey},
			{ItemID: itemID2, EncryptedKey: testEncryptedKey, ThumbnailEncryptedKey: testThumbnailKey},
		}

		mockUseCase.On("MigrateBatch", mock.Anything, user.ID, expectedInputs).
			Return(&envelopeDomain.MigrateBatchOutput{
				Migrated: 1,
				Failed:   1,
				Results: []envelopeDomain.MigrateItemResult{
					{ItemID: itemID1, Migrated: true},
					{ItemID: itemID2, Migrated: false, Reason: "item key already exists"},
				},
			}, nil).
			Once()

		c, w := createTestContext(http.MethodPost, "/v1/migrations/envelope", request)
		authenticateContext(c, user)

		handler.MigrateBatchHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.MigrateBatchResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Migrated)
		assert.Equal(t, 1, response.Failed)
		assert.Len(t, response.Results, 2)
		assert.True(t, response.Results[0].Migrated)
		assert.False(t, response.Results[1].Migrated)
		assert.Equal(t, "item key already exists", response.Results[1].Reason)

		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_EmptyBatch", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := testRequester(t)

		c, w := createTestContext(http.MethodPost, "/v1/migrations/envelope", dto.MigrateBatchRequest{})
		authenticateContext(c, user)

		handler.MigrateBatchHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidItemID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)
		user := testRequester(t)

		request := dto.MigrateBatchRequest{
			Items: []dto.MigrateItemRequest{
				{
					ItemID:       "not-a-uuid",
					EncryptedKey: base64.StdEncoding.EncodeToString(testEncryptedKey),
				},
			},
		}

		c, w := createTestContext(http.MethodPost, "/v1/migrations/envelope", request)
		authenticateContext(c, user)

		handler.MigrateBatchHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
