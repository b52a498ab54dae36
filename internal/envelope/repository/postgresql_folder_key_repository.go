package repository

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/photosafe/internal/database"
	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// PostgreSQLFolderKeyRepository implements FolderKey persistence for PostgreSQL.
// The per-user key map is stored as a JSONB column of user ID to base64 wrap.
type PostgreSQLFolderKeyRepository struct {
	db *sql.DB
}

// Create inserts a new FolderKey. Returns ErrFolderKeyExists when the folder
// already has a key map.
func (p *PostgreSQLFolderKeyRepository) Create(ctx context.Context, folderKey *envelopeDomain.FolderKey) error {
	querier := database.GetTx(ctx, p.db)

	keysJSON, err := encodeKeyMap(folderKey.Keys)
	if err != nil {
		return err
	}

	query := `INSERT INTO folder_keys (folder_id, creator_id, keys, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err = querier.ExecContext(
		ctx,
		query,
		folderKey.FolderID,
		folderKey.CreatorID,
		keysJSON,
		folderKey.CreatedAt,
		folderKey.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return envelopeDomain.ErrFolderKeyExists
		}
		return apperrors.WrapStorage(err, "failed to create folder key")
	}
	return nil
}

// Get retrieves a FolderKey by folder ID.
func (p *PostgreSQLFolderKeyRepository) Get(
	ctx context.Context,
	folderID uuid.UUID,
) (*envelopeDomain.FolderKey, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT folder_id, creator_id, keys, created_at, updated_at
			  FROM folder_keys WHERE folder_id = $1`

	var folderKey envelopeDomain.FolderKey
	var keysJSON []byte

	err := querier.QueryRowContext(ctx, query, folderID).Scan(
		&folderKey.FolderID,
		&folderKey.CreatorID,
		&keysJSON,
		&folderKey.CreatedAt,
		&folderKey.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, envelopeDomain.ErrFolderKeyNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get folder key")
	}

	folderKey.Keys, err = decodeKeyMap(keysJSON)
	if err != nil {
		return nil, err
	}

	return &folderKey, nil
}

// UpdateKeys replaces the folder's key map, guarded by updated_at so that two
// concurrent read-modify-write cycles cannot silently drop each other's
// entries. Returns ErrConflict when the row changed since it was read.
func (p *PostgreSQLFolderKeyRepository) UpdateKeys(
	ctx context.Context,
	folderKey *envelopeDomain.FolderKey,
	previousUpdatedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	keysJSON, err := encodeKeyMap(folderKey.Keys)
	if err != nil {
		return err
	}

	query := `UPDATE folder_keys SET keys = $1, updated_at = $2
			  WHERE folder_id = $3 AND updated_at = $4`

	result, err := querier.ExecContext(
		ctx,
		query,
		keysJSON,
		folderKey.UpdatedAt,
		folderKey.FolderID,
		previousUpdatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update folder key")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update folder key")
	}
	if affected == 0 {
		return apperrors.Wrap(apperrors.ErrConflict, "folder key was modified concurrently")
	}

	return nil
}

// Delete removes a FolderKey by folder ID.
func (p *PostgreSQLFolderKeyRepository) Delete(ctx context.Context, folderID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM folder_keys WHERE folder_id = $1`

	result, err := querier.ExecContext(ctx, query, folderID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete folder key")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete folder key")
	}
	if affected == 0 {
		return envelopeDomain.ErrFolderKeyNotFound
	}

	return nil
}

// NewPostgreSQLFolderKeyRepository creates a new PostgreSQL FolderKey repository.
func NewPostgreSQLFolderKeyRepository(db *sql.DB) *PostgreSQLFolderKeyRepository {
	return &PostgreSQLFolderKeyRepository{db: db}
}

// encodeKeyMap serializes the key map to JSON with base64 values.
func encodeKeyMap(keys map[uuid.UUID][]byte) ([]byte, error) {
	encoded := make(map[string]string, len(keys))
	for userID, key := range keys {
		encoded[userID.String()] = base64.StdEncoding.EncodeToString(key)
	}
	data, err := json.Marshal(encoded)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode folder key map")
	}
	return data, nil
}

// decodeKeyMap deserializes a JSON key map back into domain form.
func decodeKeyMap(data []byte) (map[uuid.UUID][]byte, error) {
	var encoded map[string]string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode folder key map")
	}

	keys := make(map[uuid.UUID][]byte, len(encoded))
	for rawID, rawKey := range encoded {
		userID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decode folder key map")
		}
		key, err := base64.StdEncoding.DecodeString(rawKey)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to decode folder key map")
		}
		keys[userID] = key
	}
	return keys, nil
}
