// Package usecase implements business logic orchestration for envelope key custody.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/database"
	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// keyStoreUseCase implements KeyStoreUseCase.
type keyStoreUseCase struct {
	txManager     database.TxManager
	itemRepo      ItemRepository
	itemKeyRepo   ItemKeyRepository
	sharedKeyRepo SharedKeyRepository
	folderKeyRepo FolderKeyRepository
	access        AccessChecker
	users         UserChecker

	// folderLocks serializes read-modify-write cycles on each folder key map.
	folderLocks *keyedMutex
}

// UploadKey stores the owner's wrap of an item's content key. Owner-only;
// duplicate uploads surface the repository's ErrItemKeyExists.
func (k *keyStoreUseCase) UploadKey(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
	encryptedKey, thumbnailEncryptedKey []byte,
) (*envelopeDomain.ItemKey, error) {
	item, err := k.itemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, envelopeDomain.ErrNotItemOwner
	}

	key, err := envelopeDomain.NewItemKey(itemID, requesterID, encryptedKey, thumbnailEncryptedKey)
	if err != nil {
		return nil, err
	}

	if err := k.itemKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	return key, nil
}

// GetKey returns the wrapped key material appropriate for the requester.
// Every access failure is reported as ErrAccessDenied so callers cannot tell
// "locked safe" from "not shared" from "not yours".
func (k *keyStoreUseCase) GetKey(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
) (*envelopeDomain.KeyMaterial, error) {
	item, err := k.itemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == requesterID {
		if !k.access.CanAccess(ctx, requesterID, item) {
			return nil, envelopeDomain.ErrAccessDenied
		}
		key, err := k.itemKeyRepo.Get(ctx, itemID)
		if err != nil {
			return nil, err
		}
		return &envelopeDomain.KeyMaterial{
			EncryptedKey:          key.EncryptedKey,
			ThumbnailEncryptedKey: key.ThumbnailEncryptedKey,
			StorageMode:           item.StorageMode,
			IsOwner:               true,
		}, nil
	}

	share, err := k.sharedKeyRepo.GetByItemAndRecipient(ctx, itemID, requesterID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, envelopeDomain.ErrAccessDenied
		}
		return nil, err
	}

	return &envelopeDomain.KeyMaterial{
		EncryptedKey: share.EncryptedKey,
		StorageMode:  item.StorageMode,
	}, nil
}

// Share grants recipientID access to the item, replacing the recipient's
// wrapped key if one already exists. Owner-only; the owner must currently be
// able to access the item, so a locked safe blocks sharing.
func (k *keyStoreUseCase) Share(
	ctx context.Context,
	itemID, requesterID, recipientID uuid.UUID,
	encryptedKey []byte,
) (*envelopeDomain.SharedKey, error) {
	item, err := k.itemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, envelopeDomain.ErrNotItemOwner
	}
	if !k.access.CanAccess(ctx, requesterID, item) {
		return nil, envelopeDomain.ErrAccessDenied
	}

	exists, err := k.users.Exists(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "recipient does not exist")
	}

	share, err := envelopeDomain.NewSharedKey(itemID, requesterID, recipientID, encryptedKey)
	if err != nil {
		return nil, err
	}

	if err := k.sharedKeyRepo.Upsert(ctx, share); err != nil {
		return nil, err
	}

	return share, nil
}

// Revoke removes recipientID's share on the item. Owner-only.
func (k *keyStoreUseCase) Revoke(ctx context.Context, itemID, requesterID, recipientID uuid.UUID) error {
	item, err := k.itemRepo.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item.OwnerID != requesterID {
		return envelopeDomain.ErrNotItemOwner
	}

	return k.sharedKeyRepo.DeleteByItemAndRecipient(ctx, itemID, recipientID)
}

// ListShares lists the shares on the item. Owner-only.
func (k *keyStoreUseCase) ListShares(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
) ([]*envelopeDomain.SharedKey, error) {
	item, err := k.itemRepo.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, envelopeDomain.ErrNotItemOwner
	}

	return k.sharedKeyRepo.ListByItem(ctx, itemID)
}

// CreateFolderKey creates a folder's key map with the creator's wrap as the
// first entry.
func (k *keyStoreUseCase) CreateFolderKey(
	ctx context.Context,
	folderID, creatorID uuid.UUID,
	wrappedKey []byte,
) (*envelopeDomain.FolderKey, error) {
	folderKey, err := envelopeDomain.NewFolderKey(folderID, creatorID, wrappedKey)
	if err != nil {
		return nil, err
	}

	if err := k.folderKeyRepo.Create(ctx, folderKey); err != nil {
		return nil, err
	}

	return folderKey, nil
}

// GetFolderKey returns the requester's own wrap from the folder key map.
func (k *keyStoreUseCase) GetFolderKey(
	ctx context.Context,
	folderID, requesterID uuid.UUID,
) (*envelopeDomain.FolderKeyMaterial, error) {
	folderKey, err := k.folderKeyRepo.Get(ctx, folderID)
	if err != nil {
		return nil, err
	}

	key, ok := folderKey.KeyFor(requesterID)
	if !ok {
		return nil, envelopeDomain.ErrAccessDenied
	}

	return &envelopeDomain.FolderKeyMaterial{
		WrappedKey: key,
		IsOwner:    folderKey.CreatorID == requesterID,
	}, nil
}

// ShareFolderKey adds or replaces memberID's wrap in the folder key map.
// Creator-only. The per-folder mutex serializes concurrent writers in this
// process; the updated_at guard in the repository catches writers in other
// processes, surfacing ErrConflict for the caller to retry.
func (k *keyStoreUseCase) ShareFolderKey(
	ctx context.Context,
	folderID, requesterID, memberID uuid.UUID,
	wrappedKey []byte,
) error {
	exists, err := k.users.Exists(ctx, memberID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "member does not exist")
	}

	k.folderLocks.Lock(folderID)
	defer k.folderLocks.Unlock(folderID)

	folderKey, err := k.folderKeyRepo.Get(ctx, folderID)
	if err != nil {
		return err
	}
	if folderKey.CreatorID != requesterID {
		return envelopeDomain.ErrAccessDenied
	}

	previousUpdatedAt := folderKey.UpdatedAt
	if err := folderKey.AddKey(memberID, wrappedKey); err != nil {
		return err
	}

	return k.folderKeyRepo.UpdateKeys(ctx, folderKey, previousUpdatedAt)
}

// RevokeFolderKey removes memberID's wrap from the folder key map. Creator-only.
func (k *keyStoreUseCase) RevokeFolderKey(ctx context.Context, folderID, requesterID, memberID uuid.UUID) error {
	k.folderLocks.Lock(folderID)
	defer k.folderLocks.Unlock(folderID)

	folderKey, err := k.folderKeyRepo.Get(ctx, folderID)
	if err != nil {
		return err
	}
	if folderKey.CreatorID != requesterID {
		return envelopeDomain.ErrAccessDenied
	}

	previousUpdatedAt := folderKey.UpdatedAt
	if err := folderKey.RemoveKey(memberID); err != nil {
		return err
	}

	return k.folderKeyRepo.UpdateKeys(ctx, folderKey, previousUpdatedAt)
}

// MigrateBatch moves a batch of the requester's legacy items to envelope
// mode. Each item migrates inside its own transaction: the key insert and the
// mode flip land together or not at all, and one bad item never rolls back
// its neighbors.
func (k *keyStoreUseCase) MigrateBatch(
	ctx context.Context,
	requesterID uuid.UUID,
	inputs []envelopeDomain.MigrateItemInput,
) (*envelopeDomain.MigrateBatchOutput, error) {
	output := &envelopeDomain.MigrateBatchOutput{
		Results: make([]envelopeDomain.MigrateItemResult, 0, len(inputs)),
	}

	for _, input := range inputs {
		err := k.migrateItem(ctx, requesterID, input)
		result := envelopeDomain.MigrateItemResult{ItemID: input.ItemID, Migrated: err == nil}
		if err != nil {
			result.Reason = err.Error()
			output.Failed++
		} else {
			output.Migrated++
		}
		output.Results = append(output.Results, result)
	}

	return output, nil
}

// migrateItem migrates a single item inside one transaction.
func (k *keyStoreUseCase) migrateItem(
	ctx context.Context,
	requesterID uuid.UUID,
	input envelopeDomain.MigrateItemInput,
) error {
	return k.txManager.WithTx(ctx, func(ctx context.Context) error {
		item, err := k.itemRepo.Get(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID != requesterID {
			return envelopeDomain.ErrNotItemOwner
		}
		if item.StorageMode != envelopeDomain.StorageModeLegacy {
			return apperrors.Wrap(apperrors.ErrInvalidInput, "item is not in legacy mode")
		}

		key, err := envelopeDomain.NewItemKey(input.ItemID, requesterID, input.EncryptedKey, input.ThumbnailEncryptedKey)
		if err != nil {
			return err
		}
		if err := k.itemKeyRepo.Create(ctx, key); err != nil {
			return err
		}

		return k.itemRepo.UpdateStorageMode(ctx, input.ItemID, envelopeDomain.StorageModeEnvelope)
	})
}

// NewKeyStoreUseCase creates a new KeyStoreUseCase with the provided dependencies.
func NewKeyStoreUseCase(
	txManager database.TxManager,
	itemRepo ItemRepository,
	itemKeyRepo ItemKeyRepository,
	sharedKeyRepo SharedKeyRepository,
	folderKeyRepo FolderKeyRepository,
	access AccessChecker,
	users UserChecker,
) KeyStoreUseCase {
	return &keyStoreUseCase{
		txManager:     txManager,
		itemRepo:      itemRepo,
		itemKeyRepo:   itemKeyRepo,
		sharedKeyRepo: sharedKeyRepo,
		folderKeyRepo: folderKeyRepo,
		access:        access,
		users:         users,
		folderLocks:   newKeyedMutex(),
	}
}
