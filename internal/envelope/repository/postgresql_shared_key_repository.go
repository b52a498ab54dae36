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

// PostgreSQLSharedKeyRepository implements SharedKey persistence for PostgreSQL.
// A unique index on (item_id, recipient_id) keeps one share per recipient.
type PostgreSQLSharedKeyRepository struct {
	db *sql.DB
}

// Upsert stores a SharedKey, replacing the encrypted key when the item is
// already shared with the recipient. Re-sharing rotates the recipient's wrap.
func (p *PostgreSQLSharedKeyRepository) Upsert(ctx context.Context, share *envelopeDomain.SharedKey) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO shared_keys (id, item_id, owner_id, recipient_id, encrypted_key, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (item_id, recipient_id)
			  DO UPDATE SET encrypted_key = EXCLUDED.encrypted_key, created_at = EXCLUDED.created_at`

	_, err := querier.ExecContext(
		ctx,
		query,
		share.ID,
		share.ItemID,
		share.OwnerID,
		share.RecipientID,
		share.EncryptedKey,
		share.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to upsert shared key")
	}
	return nil
}

// GetByItemAndRecipient retrieves the share granting recipientID access to itemID.
func (p *PostgreSQLSharedKeyRepository) GetByItemAndRecipient(
	ctx context.Context,
	itemID, recipientID uuid.UUID,
) (*envelopeDomain.SharedKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, item_id, owner_id, recipient_id, encrypted_key, created_at
			  FROM shared_keys WHERE item_id = $1 AND recipient_id = $2`

	var share envelopeDomain.SharedKey

	err := querier.QueryRowContext(ctx, query, itemID, recipientID).Scan(
		&share.ID,
		&share.ItemID,
		&share.OwnerID,
		&share.RecipientID,
		&share.EncryptedKey,
		&share.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, envelopeDomain.ErrShareNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get shared key")
	}

	return &share, nil
}

// ListByItem retrieves all shares on an item, oldest first.
func (p *PostgreSQLSharedKeyRepository) ListByItem(
	ctx context.Context,
	itemID uuid.UUID,
) ([]*envelopeDomain.SharedKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, item_id, owner_id, recipient_id, encrypted_key, created_at
			  FROM shared_keys WHERE item_id = $1
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list shared keys")
	}
	defer func() { _ = rows.Close() }()

	var shares []*envelopeDomain.SharedKey
	for rows.Next() {
		var share envelopeDomain.SharedKey

		err := rows.Scan(
			&share.ID,
			&share.ItemID,
			&share.OwnerID,
			&share.RecipientID,
			&share.EncryptedKey,
			&share.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan shared key")
		}

		shares = append(shares, &share)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate shared keys")
	}

	return shares, nil
}

// DeleteByItemAndRecipient removes the recipient's share on the item.
// Returns ErrShareNotFound when no share existed.
func (p *PostgreSQLSharedKeyRepository) DeleteByItemAndRecipient(
	ctx context.Context,
	itemID, recipientID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM shared_keys WHERE item_id = $1 AND recipient_id = $2`

	result, err := querier.ExecContext(ctx, query, itemID, recipientID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete shared key")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete shared key")
	}
	if affected == 0 {
		return envelopeDomain.ErrShareNotFound
	}

	return nil
}

// NewPostgreSQLSharedKeyRepository creates a new PostgreSQL SharedKey repository.
func NewPostgreSQLSharedKeyRepository(db *sql.DB) *PostgreSQLSharedKeyRepository {
	return &PostgreSQLSharedKeyRepository{db: db}
}
