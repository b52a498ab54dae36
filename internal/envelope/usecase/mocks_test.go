package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

// mockItemRepository is a mock implementation of ItemRepository for testing.
type mockItemRepository struct {
	mock.Mock
}

func (m *mockItemRepository) Create(ctx context.Context, item *envelopeDomain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockItemRepository) Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.Item), args.Error(1)
}

func (m *mockItemRepository) UpdateStorageMode(
	ctx context.Context,
	itemID uuid.UUID,
	mode envelopeDomain.StorageMode,
) error {
	args := m.Called(ctx, itemID, mode)
	return args.Error(0)
}

func (m *mockItemRepository) ListLegacyByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*envelopeDomain.Item, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*envelopeDomain.Item), args.Error(1)
}

func (m *mockItemRepository) DeleteBySafe(ctx context.Context, safeID uuid.UUID) error {
	args := m.Called(ctx, safeID)
	return args.Error(0)
}

// mockItemKeyRepository is a mock implementation of ItemKeyRepository for testing.
type mockItemKeyRepository struct {
	mock.Mock
}

func (m *mockItemKeyRepository) Create(ctx context.Context, key *envelopeDomain.ItemKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockItemKeyRepository) Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.ItemKey, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.ItemKey), args.Error(1)
}

func (m *mockItemKeyRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// mockSharedKeyRepository is a mock implementation of SharedKeyRepository for testing.
type mockSharedKeyRepository struct {
	mock.Mock
}

func (m *mockSharedKeyRepository) Upsert(ctx context.Context, share *envelopeDomain.SharedKey) error {
	args := m.Called(ctx, share)
	return args.Error(0)
}

func (m *mockSharedKeyRepository) GetByItemAndRecipient(
	ctx context.Context,
	itemID, recipientID uuid.UUID,
) (*envelopeDomain.SharedKey, error) {
	args := m.Called(ctx, itemID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.SharedKey), args.Error(1)
}

func (m *mockSharedKeyRepository) ListByItem(
	ctx context.Context,
	itemID uuid.UUID,
) ([]*envelopeDomain.SharedKey, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*envelopeDomain.SharedKey), args.Error(1)
}

func (m *mockSharedKeyRepository) DeleteByItemAndRecipient(
	ctx context.Context,
	itemID, recipientID uuid.UUID,
) error {
	args := m.Called(ctx, itemID, recipientID)
	return args.Error(0)
}

// mockFolderKeyRepository is a mock implementation of FolderKeyRepository for testing.
type mockFolderKeyRepository struct {
	mock.Mock
}

func (m *mockFolderKeyRepository) Create(ctx context.Context, folderKey *envelopeDomain.FolderKey) error {
	args := m.Called(ctx, folderKey)
	return args.Error(0)
}

func (m *mockFolderKeyRepository) Get(ctx context.Context, folderID uuid.UUID) (*envelopeDomain.FolderKey, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*envelopeDomain.FolderKey), args.Error(1)
}

func (m *mockFolderKeyRepository) UpdateKeys(
	ctx context.Context,
	folderKey *envelopeDomain.FolderKey,
	previousUpdatedAt time.Time,
) error {
	args := m.Called(ctx, folderKey, previousUpdatedAt)
	return args.Error(0)
}

func (m *mockFolderKeyRepository) Delete(ctx context.Context, folderID uuid.UUID) error {
	args := m.Called(ctx, folderID)
	return args.Error(0)
}

// mockAccessChecker is a mock implementation of AccessChecker for testing.
type mockAccessChecker struct {
	mock.Mock
}

func (m *mockAccessChecker) CanAccess(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	args := m.Called(ctx, userID, item)
	return args.Bool(0)
}

// mockUserChecker is a mock implementation of UserChecker for testing.
type mockUserChecker struct {
	mock.Mock
}

func (m *mockUserChecker) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
