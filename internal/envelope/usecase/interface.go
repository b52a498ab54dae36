// Package usecase defines business logic interfaces for envelope key custody:
// item key uploads, shares, folder key maps, and the legacy migration.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

// ItemRepository defines persistence operations for item descriptors.
// Implementations must support transaction-aware operations via context propagation.
type ItemRepository interface {
	// Create stores a new item descriptor.
	Create(ctx context.Context, item *envelopeDomain.Item) error

	// Get retrieves an item by ID. Returns ErrItemNotFound if not found.
	Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.Item, error)

	// UpdateStorageMode flips an item's storage mode.
	UpdateStorageMode(ctx context.Context, itemID uuid.UUID, mode envelopeDomain.StorageMode) error

	// ListLegacyByOwner retrieves legacy-mode items owned by ownerID, oldest first.
	ListLegacyByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*envelopeDomain.Item, error)

	// DeleteBySafe removes every item contained in the safe along with their
	// key and share rows. Serves the safe-delete cascade.
	DeleteBySafe(ctx context.Context, safeID uuid.UUID) error
}

// ItemKeyRepository defines persistence operations for item content keys.
type ItemKeyRepository interface {
	// Create stores a new item key. Returns ErrItemKeyExists on duplicates.
	Create(ctx context.Context, key *envelopeDomain.ItemKey) error

	// Get retrieves an item key by item ID. Returns ErrItemKeyNotFound if not found.
	Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.ItemKey, error)

	// Delete removes an item key by item ID.
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// SharedKeyRepository defines persistence operations for item shares.
type SharedKeyRepository interface {
	// Upsert stores a share, replacing the encrypted key when the recipient
	// already holds one. Re-sharing rotates the recipient's wrap.
	Upsert(ctx context.Context, share *envelopeDomain.SharedKey) error

	// GetByItemAndRecipient retrieves the recipient's share on the item.
	GetByItemAndRecipient(ctx context.Context, itemID, recipientID uuid.UUID) (*envelopeDomain.SharedKey, error)

	// ListByItem retrieves all shares on an item, oldest first.
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*envelopeDomain.SharedKey, error)

	// DeleteByItemAndRecipient removes the recipient's share on the item.
	// Returns ErrShareNotFound when no share existed.
	DeleteByItemAndRecipient(ctx context.Context, itemID, recipientID uuid.UUID) error
}

// FolderKeyRepository defines persistence operations for folder key maps.
type FolderKeyRepository interface {
	// Create stores a new folder key map. Returns ErrFolderKeyExists on duplicates.
	Create(ctx context.Context, folderKey *envelopeDomain.FolderKey) error

	// Get retrieves a folder key map by folder ID.
	Get(ctx context.Context, folderID uuid.UUID) (*envelopeDomain.FolderKey, error)

	// UpdateKeys replaces the key map, guarded by the updated_at read earlier.
	// Returns ErrConflict when the row changed since it was read.
	UpdateKeys(ctx context.Context, folderKey *envelopeDomain.FolderKey, previousUpdatedAt time.Time) error

	// Delete removes a folder key map by folder ID.
	Delete(ctx context.Context, folderID uuid.UUID) error
}

// AccessChecker answers whether a user may currently read an item's content
// and key material. Implementations return false on internal failure rather
// than leaking errors into key retrieval paths.
type AccessChecker interface {
	CanAccess(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool
}

// UserChecker reports whether a user account exists. Used to validate share
// recipients before creating rows that reference them.
type UserChecker interface {
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// KeyStoreUseCase defines business logic operations for envelope key custody.
// All key blobs are ciphertext end to end; the server never unwraps them.
type KeyStoreUseCase interface {
	// UploadKey stores the owner's wrap of an item's content key, plus the
	// optional thumbnail key wrap. One key per item; re-uploads fail with
	// ErrItemKeyExists because replacing the key would orphan ciphertext
	// encrypted under the old one. Owner-only.
	UploadKey(ctx context.Context, itemID, requesterID uuid.UUID, encryptedKey, thumbnailEncryptedKey []byte) (*envelopeDomain.ItemKey, error)

	// GetKey returns the wrapped key material appropriate for the requester:
	// the owner's wraps for owners, the recipient's share for recipients.
	// Requests failing any access check get ErrAccessDenied with no detail
	// about which check failed.
	GetKey(ctx context.Context, itemID, requesterID uuid.UUID) (*envelopeDomain.KeyMaterial, error)

	// Share grants a recipient access to an item by storing the content key
	// wrapped under the recipient's public key. Sharing is an upsert:
	// re-sharing replaces the recipient's wrapped key, so owners can rotate
	// a wrap without revoking first. Owner-only; the owner must currently
	// have access (a locked safe blocks sharing too).
	Share(ctx context.Context, itemID, requesterID, recipientID uuid.UUID, encryptedKey []byte) (*envelopeDomain.SharedKey, error)

	// Revoke removes the recipient's share. Owner-only. The recipient may
	// retain previously downloaded plaintext but can fetch nothing new.
	Revoke(ctx context.Context, itemID, requesterID, recipientID uuid.UUID) error

	// ListShares lists the shares on an item. Owner-only.
	ListShares(ctx context.Context, itemID, requesterID uuid.UUID) ([]*envelopeDomain.SharedKey, error)

	// CreateFolderKey creates a folder's key map with the creator's own wrap
	// as its first entry.
	CreateFolderKey(ctx context.Context, folderID, creatorID uuid.UUID, wrappedKey []byte) (*envelopeDomain.FolderKey, error)

	// GetFolderKey returns the requester's own wrap from the folder key map.
	// Users without an entry get ErrAccessDenied; the full map is never
	// handed out.
	GetFolderKey(ctx context.Context, folderID, requesterID uuid.UUID) (*envelopeDomain.FolderKeyMaterial, error)

	// ShareFolderKey adds or replaces a member's wrap in the folder key map.
	// Creator-only. Writes to the same folder are serialized.
	ShareFolderKey(ctx context.Context, folderID, requesterID, memberID uuid.UUID, wrappedKey []byte) error

	// RevokeFolderKey removes a member's wrap from the folder key map.
	// Creator-only; the creator's own entry cannot be removed.
	RevokeFolderKey(ctx context.Context, folderID, requesterID, memberID uuid.UUID) error

	// MigrateBatch moves a batch of the requester's legacy items to envelope
	// mode. Each item migrates in its own transaction; per-item failures are
	// reported in the output and never abort the rest of the batch.
	MigrateBatch(ctx context.Context, requesterID uuid.UUID, inputs []envelopeDomain.MigrateItemInput) (*envelopeDomain.MigrateBatchOutput, error)
}
