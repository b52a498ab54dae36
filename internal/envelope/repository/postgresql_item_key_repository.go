package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/photosafe/internal/database"
	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgreSQLItemKeyRepository implements ItemKey persistence for PostgreSQL.
// The item_id primary key makes duplicate uploads a database-level conflict,
// so concurrent first-uploads cannot both win.
type PostgreSQLItemKeyRepository struct {
	db *sql.DB
}

// Create inserts a new ItemKey. Returns ErrItemKeyExists when a key is
// already stored for the item.
func (p *PostgreSQLItemKeyRepository) Create(ctx context.Context, key *envelopeDomain.ItemKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO item_keys (item_id, owner_id, encrypted_key, thumbnail_encrypted_key, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		key.ItemID,
		key.OwnerID,
		key.EncryptedKey,
		key.ThumbnailEncryptedKey,
		key.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return envelopeDomain.ErrItemKeyExists
		}
		return apperrors.WrapStorage(err, "failed to create item key")
	}
	return nil
}

// Get retrieves an ItemKey by item ID.
func (p *PostgreSQLItemKeyRepository) Get(ctx context.Context, itemID uuid.UUID) (*envelopeDomain.ItemKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT item_id, owner_id, encrypted_key, thumbnail_encrypted_key, created_at
			  FROM item_keys WHERE item_id = $1`

	var key envelopeDomain.ItemKey

	err := querier.QueryRowContext(ctx, query, itemID).Scan(
		&key.ItemID,
		&key.OwnerID,
		&key.EncryptedKey,
		&key.ThumbnailEncryptedKey,
		&key.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, envelopeDomain.ErrItemKeyNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get item key")
	}

	return &key, nil
}

// Delete removes an ItemKey by item ID. Used when the item itself is deleted.
func (p *PostgreSQLItemKeyRepository) Delete(ctx context.Context, itemID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM item_keys WHERE item_id = $1`

	_, err := querier.ExecContext(ctx, query, itemID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete item key")
	}
	return nil
}

// NewPostgreSQLItemKeyRepository creates a new PostgreSQL ItemKey repository.
func NewPostgreSQLItemKeyRepository(db *sql.DB) *PostgreSQLItemKeyRepository {
	return &PostgreSQLItemKeyRepository{db: db}
}
