// Package domain defines the core domain models for envelope key custody:
// per-item content keys, shares, and folder key maps.
//
// All key material handled here is ciphertext. A content key (CK) is wrapped
// under the owner's DEK before upload; shares wrap the CK under the
// recipient's public key; folder keys map each authorized user to their own
// wrap of the folder key. The server stores and returns these blobs without
// ever being able to open them.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// StorageMode distinguishes items encrypted under the legacy server-side
// scheme from items with client-side envelope keys.
type StorageMode string

const (
	// StorageModeLegacy marks items the server can still decrypt with the
	// user's cached DEK.
	StorageModeLegacy StorageMode = "legacy"

	// StorageModeEnvelope marks items with a client-wrapped content key.
	StorageModeEnvelope StorageMode = "envelope"
)

// minWrappedKeyBytes is a sanity bound on opaque wrapped-key blobs.
const minWrappedKeyBytes = 16

// Item is the storage descriptor for an encrypted photo or video. Content
// bytes live in object storage; this row carries ownership, placement and
// encryption mode.
type Item struct {
	// ID is the unique identifier for this item (UUIDv7).
	ID uuid.UUID
	// OwnerID is the uploading user.
	OwnerID uuid.UUID
	// SafeID places the item inside a safe; uuid.Nil means main storage.
	SafeID uuid.UUID
	// FolderID places the item inside a shared folder; uuid.Nil means none.
	FolderID uuid.UUID
	// StorageMode records which encryption scheme covers the content.
	StorageMode StorageMode
	// CreatedAt is the UTC timestamp when the item was created.
	CreatedAt time.Time
}

// InSafe reports whether the item lives inside a safe.
func (i *Item) InSafe() bool {
	return i.SafeID != uuid.Nil
}

// ItemKey is the owner's wrap of an item's content key.
type ItemKey struct {
	// ItemID is the item this key decrypts; one key per item.
	ItemID uuid.UUID
	// OwnerID is the key owner; only the owner's client can unwrap EncryptedKey.
	OwnerID uuid.UUID
	// EncryptedKey is the CK wrapped under the owner's DEK.
	EncryptedKey []byte
	// ThumbnailEncryptedKey is the thumbnail CK wrapped under the owner's DEK.
	// Empty when the item has no separately encrypted thumbnail.
	ThumbnailEncryptedKey []byte
	// CreatedAt is the UTC timestamp when the key was uploaded.
	CreatedAt time.Time
}

// NewItemKey constructs an ItemKey, validating the wrapped blobs. The
// thumbnail wrap is optional.
func NewItemKey(itemID, ownerID uuid.UUID, encryptedKey, thumbnailEncryptedKey []byte) (*ItemKey, error) {
	if itemID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "item_id is required")
	}
	if ownerID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "owner_id is required")
	}
	if len(encryptedKey) < minWrappedKeyBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted_key is missing or too short")
	}
	if len(thumbnailEncryptedKey) > 0 && len(thumbnailEncryptedKey) < minWrappedKeyBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "thumbnail_encrypted_key is too short")
	}
	return &ItemKey{
		ItemID:                itemID,
		OwnerID:               ownerID,
		EncryptedKey:          encryptedKey,
		ThumbnailEncryptedKey: thumbnailEncryptedKey,
		CreatedAt:             time.Now().UTC(),
	}, nil
}

// KeyMaterial is what a requester receives from a key lookup: their wrap of
// the content key, plus the thumbnail wrap when one exists. Recipients of
// shares get only the content key wrap.
type KeyMaterial struct {
	EncryptedKey          []byte
	ThumbnailEncryptedKey []byte
	// StorageMode tells the client which decryption path applies.
	StorageMode StorageMode
	// IsOwner distinguishes the owner's wrap from a recipient's share.
	IsOwner bool
}
