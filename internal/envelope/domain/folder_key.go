package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// FolderKey holds the per-user wraps of a shared folder's key. Keys maps each
// authorized user, including the creator, to the folder key wrapped under
// that user's public key. A user reads only their own entry; the full map is
// never handed out.
type FolderKey struct {
	// FolderID is the folder this key map belongs to; one map per folder.
	FolderID uuid.UUID
	// CreatorID is the user who created the folder.
	CreatorID uuid.UUID
	// Keys maps user ID to that user's wrap of the folder key.
	Keys map[uuid.UUID][]byte
	// CreatedAt is the UTC timestamp when the folder key was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last Keys mutation.
	UpdatedAt time.Time
}

// NewFolderKey constructs a FolderKey with the creator's own wrap as the
// first map entry. A folder key map always contains its creator.
func NewFolderKey(folderID, creatorID uuid.UUID, creatorWrappedKey []byte) (*FolderKey, error) {
	if folderID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "folder_id is required")
	}
	if creatorID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "creator_id is required")
	}
	if len(creatorWrappedKey) < minWrappedKeyBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "wrapped_key is missing or too short")
	}

	now := time.Now().UTC()
	return &FolderKey{
		FolderID:  folderID,
		CreatorID: creatorID,
		Keys:      map[uuid.UUID][]byte{creatorID: creatorWrappedKey},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// FolderKeyMaterial is what a requester receives from a folder key lookup:
// only their own wrap, never the full map.
type FolderKeyMaterial struct {
	WrappedKey []byte
	// IsOwner reports whether the requester is the folder's creator.
	IsOwner bool
}

// KeyFor returns the wrap belonging to userID, or false when the user has no
// entry in the map.
func (f *FolderKey) KeyFor(userID uuid.UUID) ([]byte, bool) {
	key, ok := f.Keys[userID]
	return key, ok
}

// AddKey inserts or replaces the wrap for userID and bumps UpdatedAt.
func (f *FolderKey) AddKey(userID uuid.UUID, wrappedKey []byte) error {
	if userID == uuid.Nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user_id is required")
	}
	if len(wrappedKey) < minWrappedKeyBytes {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "wrapped_key is missing or too short")
	}
	if f.Keys == nil {
		f.Keys = make(map[uuid.UUID][]byte)
	}
	f.Keys[userID] = wrappedKey
	f.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveKey drops the wrap for userID and bumps UpdatedAt. Removing the
// creator's entry is rejected; a folder key map always contains its creator.
func (f *FolderKey) RemoveKey(userID uuid.UUID) error {
	if userID == f.CreatorID {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "cannot remove the folder creator")
	}
	delete(f.Keys, userID)
	f.UpdatedAt = time.Now().UTC()
	return nil
}
