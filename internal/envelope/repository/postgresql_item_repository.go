// Package repository implements data persistence for envelope key custody.
//
// Provides PostgreSQL implementations with transaction support via
// database.GetTx(). All key columns hold ciphertext only.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/database"
	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// PostgreSQLItemRepository implements Item persistence for PostgreSQL.
type PostgreSQLItemRepository struct {
	db *sql.DB
}

// Create inserts a new Item into the PostgreSQL database.
func (p *PostgreSQLItemRepository) Create(ctx context.Context, item *envelopeDomain.Item) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO items (id, owner_id, safe_id, folder_id, storage_mode, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		nullUUID(item.SafeID),
		nullUUID(item.FolderID),
		item.StorageMode,
		item.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create item")
	}
	return nil
}

// Get retrieves an Item by ID from the PostgreSQL database.
func (p *PostgreSQLItemRepository) Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, safe_id, folder_id, storage_mode, created_at
			  FROM items WHERE id = $1`

	var item envelopeDomain.Item
	var safeID, folderID uuid.NullUUID

	err := querier.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.OwnerID,
		&safeID,
		&folderID,
		&item.StorageMode,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, envelopeDomain.ErrItemNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get item")
	}

	item.SafeID = safeID.UUID
	item.FolderID = folderID.UUID

	return &item, nil
}

// UpdateStorageMode flips an item's storage mode. Used by the envelope
// migration after the item's content key has been stored.
func (p *PostgreSQLItemRepository) UpdateStorageMode(
	ctx context.Context,
	itemID uuid.UUID,
	mode envelopeDomain.StorageMode,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE items SET storage_mode = $1 WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, mode, itemID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update item storage mode")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update item storage mode")
	}
	if affected == 0 {
		return envelopeDomain.ErrItemNotFound
	}

	return nil
}

// ListLegacyByOwner retrieves up to limit legacy-mode items owned by ownerID,
// oldest first. Used to drive migration batches.
func (p *PostgreSQLItemRepository) ListLegacyByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*envelopeDomain.Item, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, safe_id, folder_id, storage_mode, created_at
			  FROM items
			  WHERE owner_id = $1 AND storage_mode = $2
			  ORDER BY created_at ASC
			  LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, envelopeDomain.StorageModeLegacy, limit)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list legacy items")
	}
	defer func() { _ = rows.Close() }()

	var items []*envelopeDomain.Item
	for rows.Next() {
		var item envelopeDomain.Item
		var safeID, folderID uuid.NullUUID

		err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&safeID,
			&folderID,
			&item.StorageMode,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan item")
		}

		item.SafeID = safeID.UUID
		item.FolderID = folderID.UUID
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate items")
	}

	return items, nil
}

// DeleteBySafe removes every item contained in the safe. Item key and share
// rows cascade with their items. Deleting zero rows is not an error.
func (p *PostgreSQLItemRepository) DeleteBySafe(ctx context.Context, safeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM items WHERE safe_id = $1`

	if _, err := querier.ExecContext(ctx, query, safeID); err != nil {
		return apperrors.WrapStorage(err, "failed to delete items by safe")
	}
	return nil
}

// NewPostgreSQLItemRepository creates a new PostgreSQL Item repository.
func NewPostgreSQLItemRepository(db *sql.DB) *PostgreSQLItemRepository {
	return &PostgreSQLItemRepository{db: db}
}

// nullUUID maps uuid.Nil to SQL NULL.
func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}
