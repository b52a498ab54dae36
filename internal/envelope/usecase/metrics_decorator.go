package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	"github.com/allisson/photosafe/internal/metrics"
)

// keyStoreUseCaseWithMetrics decorates KeyStoreUseCase with metrics instrumentation.
type keyStoreUseCaseWithMetrics struct {
	next    KeyStoreUseCase
	metrics metrics.BusinessMetrics
}

// NewKeyStoreUseCaseWithMetrics wraps a KeyStoreUseCase with metrics recording.
func NewKeyStoreUseCaseWithMetrics(useCase KeyStoreUseCase, m metrics.BusinessMetrics) KeyStoreUseCase {
	return &keyStoreUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (k *keyStoreUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	k.metrics.RecordOperation(ctx, "envelope", operation, status)
	k.metrics.RecordDuration(ctx, "envelope", operation, time.Since(start), status)
}

// UploadKey records metrics for key upload operations.
func (k *keyStoreUseCaseWithMetrics) UploadKey(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
	encryptedKey, thumbnailEncryptedKey []byte,
) (*envelopeDomain.ItemKey, error) {
	start := time.Now()
	key, err := k.next.UploadKey(ctx, itemID, requesterID, encryptedKey, thumbnailEncryptedKey)
	k.record(ctx, "key_upload", start, err)
	return key, err
}

// GetKey records metrics for key retrieval operations.
func (k *keyStoreUseCaseWithMetrics) GetKey(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
) (*envelopeDomain.KeyMaterial, error) {
	start := time.Now()
	key, err := k.next.GetKey(ctx, itemID, requesterID)
	k.record(ctx, "key_get", start, err)
	return key, err
}

// Share records metrics for share operations.
func (k *keyStoreUseCaseWithMetrics) Share(
	ctx context.Context,
	itemID, requesterID, recipientID uuid.UUID,
	encryptedKey []byte,
) (*envelopeDomain.SharedKey, error) {
	start := time.Now()
	share, err := k.next.Share(ctx, itemID, requesterID, recipientID, encryptedKey)
	k.record(ctx, "key_share", start, err)
	return share, err
}

// Revoke records metrics for revoke operations.
func (k *keyStoreUseCaseWithMetrics) Revoke(ctx context.Context, itemID, requesterID, recipientID uuid.UUID) error {
	start := time.Now()
	err := k.next.Revoke(ctx, itemID, requesterID, recipientID)
	k.record(ctx, "key_revoke", start, err)
	return err
}

// ListShares records metrics for share listing operations.
func (k *keyStoreUseCaseWithMetrics) ListShares(
	ctx context.Context,
	itemID, requesterID uuid.UUID,
) ([]*envelopeDomain.SharedKey, error) {
	start := time.Now()
	shares, err := k.next.ListShares(ctx, itemID, requesterID)
	k.record(ctx, "key_list_shares", start, err)
	return shares, err
}

// CreateFolderKey records metrics for folder key creation operations.
func (k *keyStoreUseCaseWithMetrics) CreateFolderKey(
	ctx context.Context,
	folderID, creatorID uuid.UUID,
	wrappedKey []byte,
) (*envelopeDomain.FolderKey, error) {
	start := time.Now()
	folderKey, err := k.next.CreateFolderKey(ctx, folderID, creatorID, wrappedKey)
	k.record(ctx, "folder_key_create", start, err)
	return folderKey, err
}

// GetFolderKey records metrics for folder key retrieval operations.
func (k *keyStoreUseCaseWithMetrics) GetFolderKey(
	ctx context.Context,
	folderID, requesterID uuid.UUID,
) (*envelopeDomain.FolderKeyMaterial, error) {
	start := time.Now()
	key, err := k.next.GetFolderKey(ctx, folderID, requesterID)
	k.record(ctx, "folder_key_get", start, err)
	return key, err
}

// ShareFolderKey records metrics for folder key share operations.
func (k *keyStoreUseCaseWithMetrics) ShareFolderKey(
	ctx context.Context,
	folderID, requesterID, memberID uuid.UUID,
	wrappedKey []byte,
) error {
	start := time.Now()
	err := k.next.ShareFolderKey(ctx, folderID, requesterID, memberID, wrappedKey)
	k.record(ctx, "folder_key_share", start, err)
	return err
}

// RevokeFolderKey records metrics for folder key revoke operations.
func (k *keyStoreUseCaseWithMetrics) RevokeFolderKey(
	ctx context.Context,
	folderID, requesterID, memberID uuid.UUID,
) error {
	start := time.Now()
	err := k.next.RevokeFolderKey(ctx, folderID, requesterID, memberID)
	k.record(ctx, "folder_key_revoke", start, err)
	return err
}

// MigrateBatch records metrics for migration batches.
func (k *keyStoreUseCaseWithMetrics) MigrateBatch(
	ctx context.Context,
	requesterID uuid.UUID,
	inputs []envelopeDomain.MigrateItemInput,
) (*envelopeDomain.MigrateBatchOutput, error) {
	start := time.Now()
	output, err := k.next.MigrateBatch(ctx, requesterID, inputs)
	k.record(ctx, "migrate_batch", start, err)
	return output, err
}
