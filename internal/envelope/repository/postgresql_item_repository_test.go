package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

var itemColumns = []string{"id", "owner_id", "safe_id", "folder_id", "storage_mode", "created_at"}

func TestPostgreSQLItemRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)
	item := &envelopeDomain.Item{
		ID:          uuid.Must(uuid.NewV7()),
		OwnerID:     uuid.Must(uuid.NewV7()),
		StorageMode: envelopeDomain.StorageModeEnvelope,
		CreatedAt:   time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO items").
		WithArgs(item.ID, item.OwnerID, sqlmock.AnyArg(), sqlmock.AnyArg(), item.StorageMode, item.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(context.Background(), item)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLItemRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)
	itemID := uuid.Must(uuid.NewV7())
	ownerID := uuid.Must(uuid.NewV7())
	safeID := uuid.Must(uuid.NewV7())

	rows := sqlmock.NewRows(itemColumns).
		AddRow(itemID, ownerID, safeID, nil, string(envelopeDomain.StorageModeLegacy), time.Now().UTC())
	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WithArgs(itemID).
		WillReturnRows(rows)

	item, err := repo.Get(context.Background(), itemID)
	require.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, safeID, item.SafeID)
	assert.True(t, item.InSafe())
	assert.Equal(t, uuid.Nil, item.FolderID)
	assert.Equal(t, envelopeDomain.StorageModeLegacy, item.StorageMode)
}

func TestPostgreSQLItemRepository_Get_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM items WHERE id").
		WillReturnRows(sqlmock.NewRows(itemColumns))

	item, err := repo.Get(context.Background(), uuid.Must(uuid.NewV7()))
	assert.Nil(t, item)
	assert.ErrorIs(t, err, envelopeDomain.ErrItemNotFound)
}

func TestPostgreSQLItemRepository_UpdateStorageMode(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)
	itemID := uuid.Must(uuid.NewV7())

	mock.ExpectExec("UPDATE items SET storage_mode").
		WithArgs(envelopeDomain.StorageModeEnvelope, itemID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateStorageMode(context.Background(), itemID, envelopeDomain.StorageModeEnvelope)
	assert.NoError(t, err)
}

func TestPostgreSQLItemRepository_UpdateStorageMode_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)

	mock.ExpectExec("UPDATE items SET storage_mode").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStorageMode(context.Background(), uuid.Must(uuid.NewV7()), envelopeDomain.StorageModeEnvelope)
	assert.ErrorIs(t, err, envelopeDomain.ErrItemNotFound)
}

func TestPostgreSQLItemRepository_ListLegacyByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)
	ownerID := uuid.Must(uuid.NewV7())

	rows := sqlmock.NewRows(itemColumns).
		AddRow(uuid.Must(uuid.NewV7()), ownerID, nil, nil, string(envelopeDomain.StorageModeLegacy), time.Now().UTC()).
		AddRow(uuid.Must(uuid.NewV7()), ownerID, nil, nil, string(envelopeDomain.StorageModeLegacy), time.Now().UTC())
	mock.ExpectQuery("SELECT (.+) FROM items").
		WithArgs(ownerID, envelopeDomain.StorageModeLegacy, 100).
		WillReturnRows(rows)

	items, err := repo.ListLegacyByOwner(context.Background(), ownerID, 100)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPostgreSQLItemRepository_DeleteBySafe(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)
	safeID := uuid.Must(uuid.NewV7())

	mock.ExpectExec("DELETE FROM items WHERE safe_id").
		WithArgs(safeID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err = repo.DeleteBySafe(context.Background(), safeID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLItemRepository_DeleteBySafe_EmptySafe(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgreSQLItemRepository(db)

	mock.ExpectExec("DELETE FROM items WHERE safe_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.DeleteBySafe(context.Background(), uuid.Must(uuid.NewV7()))
	assert.NoError(t, err)
}
