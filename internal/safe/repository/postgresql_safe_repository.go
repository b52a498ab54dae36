// Package repository implements data persistence for safes and safe sessions.
//
// Provides PostgreSQL implementations with transaction support via
// database.GetTx(). Safe rows store ciphertext and key-wrap metadata only.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// PostgreSQLSafeRepository implements Safe persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLSafeRepository struct {
	db *sql.DB
}

// Create inserts a new Safe into the PostgreSQL database.
func (p *PostgreSQLSafeRepository) Create(ctx context.Context, safe *safeDomain.Safe) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO safes (id, owner_id, name, unlock_type, encrypted_dek, salt, credential_id,
				  recovery_encrypted_dek, escrow_wrapped_recovery_dek, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		safe.ID,
		safe.OwnerID,
		safe.Name,
		safe.UnlockType,
		safe.EncryptedDEK,
		safe.Salt,
		nullString(safe.CredentialID),
		safe.RecoveryEncryptedDEK,
		safe.EscrowWrappedRecoveryDEK,
		safe.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create safe")
	}
	return nil
}

// Get retrieves a Safe by ID from the PostgreSQL database.
func (p *PostgreSQLSafeRepository) Get(ctx context.Context, safeID uuid.UUID) (*safeDomain.Safe, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, unlock_type, encrypted_dek, salt, credential_id,
				  recovery_encrypted_dek, escrow_wrapped_recovery_dek, created_at
			  FROM safes WHERE id = $1`

	var safe safeDomain.Safe
	var credentialID sql.NullString

	err := querier.QueryRowContext(ctx, query, safeID).Scan(
		&safe.ID,
		&safe.OwnerID,
		&safe.Name,
		&safe.UnlockType,
		&safe.EncryptedDEK,
		&safe.Salt,
		&credentialID,
		&safe.RecoveryEncryptedDEK,
		&safe.EscrowWrappedRecoveryDEK,
		&safe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, safeDomain.ErrSafeNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get safe")
	}

	safe.CredentialID = credentialID.String

	return &safe, nil
}

// ListByOwner retrieves the safes owned by ownerID, newest first.
func (p *PostgreSQLSafeRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*safeDomain.Safe, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, owner_id, name, unlock_type, encrypted_dek, salt, credential_id,
				  recovery_encrypted_dek, escrow_wrapped_recovery_dek, created_at
			  FROM safes WHERE owner_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list safes")
	}
	defer func() { _ = rows.Close() }()

	var safes []*safeDomain.Safe
	for rows.Next() {
		var safe safeDomain.Safe
		var credentialID sql.NullString

		err := rows.Scan(
			&safe.ID,
			&safe.OwnerID,
			&safe.Name,
			&safe.UnlockType,
			&safe.EncryptedDEK,
			&safe.Salt,
			&credentialID,
			&safe.RecoveryEncryptedDEK,
			&safe.EscrowWrappedRecoveryDEK,
			&safe.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan safe")
		}

		safe.CredentialID = credentialID.String
		safes = append(safes, &safe)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate safes")
	}

	return safes, nil
}

// UpdateName renames an existing Safe.
func (p *PostgreSQLSafeRepository) UpdateName(ctx context.Context, safeID uuid.UUID, name string) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE safes SET name = $1 WHERE id = $2`

	result, err := querier.ExecContext(ctx, query, name, safeID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to rename safe")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to rename safe")
	}
	if affected == 0 {
		return safeDomain.ErrSafeNotFound
	}

	return nil
}

// Delete removes a Safe by ID.
func (p *PostgreSQLSafeRepository) Delete(ctx context.Context, safeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM safes WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, safeID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete safe")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete safe")
	}
	if affected == 0 {
		return safeDomain.ErrSafeNotFound
	}

	return nil
}

// NewPostgreSQLSafeRepository creates a new PostgreSQL Safe repository.
func NewPostgreSQLSafeRepository(db *sql.DB) *PostgreSQLSafeRepository {
	return &PostgreSQLSafeRepository{db: db}
}

// nullString maps an empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
