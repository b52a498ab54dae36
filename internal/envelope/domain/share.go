package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// SharedKey grants a recipient access to one item by re-wrapping its content
// key under the recipient's public key. Revoking a share deletes the row; the
// recipient may retain previously downloaded plaintext, but can fetch nothing
// new.
type SharedKey struct {
	// ID is the unique identifier for this share (UUIDv7).
	ID uuid.UUID
	// ItemID is the shared item.
	ItemID uuid.UUID
	// OwnerID is the item owner who created the share.
	OwnerID uuid.UUID
	// RecipientID is the user being granted access.
	RecipientID uuid.UUID
	// EncryptedKey is the CK wrapped under the recipient's public key.
	EncryptedKey []byte
	// CreatedAt is the UTC timestamp when the share was created.
	CreatedAt time.Time
}

// NewSharedKey constructs a SharedKey, validating all fields. Sharing with
// yourself is rejected; the owner already holds the item key.
func NewSharedKey(itemID, ownerID, recipientID uuid.UUID, encryptedKey []byte) (*SharedKey, error) {
	if itemID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "item_id is required")
	}
	if ownerID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "owner_id is required")
	}
	if recipientID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "recipient_id is required")
	}
	if recipientID == ownerID {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "cannot share an item with its owner")
	}
	if len(encryptedKey) < minWrappedKeyBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted_key is missing or too short")
	}
	return &SharedKey{
		ID:           uuid.Must(uuid.NewV7()),
		ItemID:       itemID,
		OwnerID:      ownerID,
		RecipientID:  recipientID,
		EncryptedKey: encryptedKey,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
