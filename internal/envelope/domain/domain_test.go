package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/photosafe/internal/errors"
)

var testWrappedKey = []byte("content-key-wrapped-ciphertext!!")

func TestNewItemKey(t *testing.T) {
	itemID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())

	t.Run("valid", func(t *testing.T) {
		key, err := NewItemKey(itemID, ownerID, testWrappedKey, nil)
		require.NoError(t, err)
		assert.Equal(t, itemID, key.ItemID)
		assert.Equal(t, ownerID, key.OwnerID)
		assert.Equal(t, testWrappedKey, key.EncryptedKey)
		assert.Empty(t, key.ThumbnailEncryptedKey)
		assert.False(t, key.CreatedAt.IsZero())
	})

	t.Run("with thumbnail wrap", func(t *testing.T) {
		thumbKey := []byte("thumbnail-key-wrapped-ciphertxt!")
		key, err := NewItemKey(itemID, ownerID, testWrappedKey, thumbKey)
		require.NoError(t, err)
		assert.Equal(t, thumbKey, key.ThumbnailEncryptedKey)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := NewItemKey(itemID, ownerID, []byte("tiny"), nil)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("short thumbnail key", func(t *testing.T) {
		_, err := NewItemKey(itemID, ownerID, testWrappedKey, []byte("tiny"))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := NewItemKey(uuid.Nil, ownerID, testWrappedKey, nil)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestNewSharedKey(t *testing.T) {
	itemID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	recipientID := uuid.Must(uuid.NewV7())

	t.Run("valid", func(t *testing.T) {
		share, err := NewSharedKey(itemID, ownerID, recipientID, testWrappedKey)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, share.ID)
		assert.Equal(t, recipientID, share.RecipientID)
	})

	t.Run("self share rejected", func(t *testing.T) {
		_, err := NewSharedKey(itemID, ownerID, ownerID, testWrappedKey)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})

	t.Run("short key", func(t *testing.T) {
		_, err := NewSharedKey(itemID, ownerID, recipientID, []byte("tiny"))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestFolderKey(t *testing.T) {
	folderID := uuid.Must(uuid.NewV7())
	creatorID := uuid.Must(uuid.NewV7())
	memberID := uuid.Must(uuid.NewV7())

	t.Run("creator entry is the first key", func(t *testing.T) {
		fk, err := NewFolderKey(folderID, creatorID, testWrappedKey)
		require.NoError(t, err)

		key, ok := fk.KeyFor(creatorID)
		assert.True(t, ok)
		assert.Equal(t, testWrappedKey, key)

		_, ok = fk.KeyFor(memberID)
		assert.False(t, ok)
	})

	t.Run("add and remove member", func(t *testing.T) {
		fk, err := NewFolderKey(folderID, creatorID, testWrappedKey)
		require.NoError(t, err)

		memberWrap := []byte("member-wrapped-folder-key-bytes!")
		require.NoError(t, fk.AddKey(memberID, memberWrap))

		key, ok := fk.KeyFor(memberID)
		assert.True(t, ok)
		assert.Equal(t, memberWrap, key)

		require.NoError(t, fk.RemoveKey(memberID))
		_, ok = fk.KeyFor(memberID)
		assert.False(t, ok)
	})

	t.Run("creator cannot be removed", func(t *testing.T) {
		fk, err := NewFolderKey(folderID, creatorID, testWrappedKey)
		require.NoError(t, err)

		err = fk.RemoveKey(creatorID)
		assert.ErrorIs(t, err, errors.ErrInvalidInput)

		_, ok := fk.KeyFor(creatorID)
		assert.True(t, ok)
	})

	t.Run("short member wrap rejected", func(t *testing.T) {
		fk, err := NewFolderKey(folderID, creatorID, testWrappedKey)
		require.NoError(t, err)

		err = fk.AddKey(memberID, []byte("tiny"))
		assert.ErrorIs(t, err, errors.ErrInvalidInput)
	})
}

func TestItem_InSafe(t *testing.T) {
	item := &Item{ID: uuid.Must(uuid.NewV7()), SafeID: uuid.Nil}
	assert.False(t, item.InSafe())

	item.SafeID = uuid.Must(uuid.NewV7())
	assert.True(t, item.InSafe())
}
