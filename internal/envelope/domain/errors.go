package domain

import (
	"github.com/allisson/photosafe/internal/errors"
)

// Envelope-specific error definitions.
var (
	// ErrItemNotFound indicates the item does not exist.
	ErrItemNotFound = errors.Wrap(errors.ErrNotFound, "item not found")

	// ErrItemKeyNotFound indicates no content key is stored for the item.
	ErrItemKeyNotFound = errors.Wrap(errors.ErrNotFound, "item key not found")

	// ErrItemKeyExists indicates a content key is already stored for the item.
	// Key uploads are immutable; replacing a key would orphan the ciphertext
	// encrypted under the old one.
	ErrItemKeyExists = errors.Wrap(errors.ErrConflict, "item key already exists")

	// ErrShareNotFound indicates no share row matched.
	ErrShareNotFound = errors.Wrap(errors.ErrNotFound, "share not found")

	// ErrFolderKeyNotFound indicates the folder has no key map.
	ErrFolderKeyNotFound = errors.Wrap(errors.ErrNotFound, "folder key not found")

	// ErrFolderKeyExists indicates the folder already has a key map.
	ErrFolderKeyExists = errors.Wrap(errors.ErrConflict, "folder key already exists")

	// ErrNotItemOwner indicates the requester does not own the item. Shares,
	// revocations and key uploads are owner-only.
	ErrNotItemOwner = errors.Wrap(errors.ErrForbidden, "requester is not the item owner")

	// ErrAccessDenied indicates the requester may not read the key material.
	// Deliberately carries no detail about which check failed.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")
)
