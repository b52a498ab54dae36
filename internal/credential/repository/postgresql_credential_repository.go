// Package repository implements PostgreSQL persistence for hardware credentials.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// Create inserts a new credential. Returns ErrCredentialExists when the
// credential id is already registered.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, cred *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (id, user_id, credential_id, public_key, sign_count,
				  wrapped_cache_key, wrap_nonce, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		cred.ID,
		cred.UserID,
		cred.CredentialID,
		cred.PublicKey,
		cred.SignCount,
		cred.WrappedCacheKey,
		cred.WrapNonce,
		cred.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return credentialDomain.ErrCredentialExists
		}
		return apperrors.WrapStorage(err, "failed to create credential")
	}
	return nil
}

// GetByCredentialID retrieves a credential by its authenticator-assigned id.
func (p *PostgreSQLCredentialRepository) GetByCredentialID(
	ctx context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, credential_id, public_key, sign_count,
				  wrapped_cache_key, wrap_nonce, created_at
			  FROM credentials WHERE credential_id = $1`

	var cred credentialDomain.Credential

	err := querier.QueryRowContext(ctx, query, credentialID).Scan(
		&cred.ID,
		&cred.UserID,
		&cred.CredentialID,
		&cred.PublicKey,
		&cred.SignCount,
		&cred.WrappedCacheKey,
		&cred.WrapNonce,
		&cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get credential")
	}

	return &cred, nil
}

// ListByUser retrieves the user's credentials, newest first.
func (p *PostgreSQLCredentialRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, credential_id, public_key, sign_count,
				  wrapped_cache_key, wrap_nonce, created_at
			  FROM credentials WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list credentials")
	}
	defer rows.Close()

	var creds []*credentialDomain.Credential
	for rows.Next() {
		var cred credentialDomain.Credential
		err := rows.Scan(
			&cred.ID,
			&cred.UserID,
			&cred.CredentialID,
			&cred.PublicKey,
			&cred.SignCount,
			&cred.WrappedCacheKey,
			&cred.WrapNonce,
			&cred.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan credential")
		}
		creds = append(creds, &cred)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate credentials")
	}

	return creds, nil
}

// Delete removes the user's credential. Scoped to the owner so one user
// cannot delete another user's credential by guessing its id.
func (p *PostgreSQLCredentialRepository) Delete(ctx context.Context, userID uuid.UUID, credentialID string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM credentials WHERE user_id = $1 AND credential_id = $2`

	result, err := querier.ExecContext(ctx, query, userID, credentialID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if affected == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

// UpdateCacheWrap stores the cached-key wrap on the credential row.
func (p *PostgreSQLCredentialRepository) UpdateCacheWrap(
	ctx context.Context,
	credentialID string,
	wrappedCacheKey, wrapNonce []byte,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET wrapped_cache_key = $1, wrap_nonce = $2 WHERE credential_id = $3`

	result, err := querier.ExecContext(ctx, query, wrappedCacheKey, wrapNonce, credentialID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update credential cache wrap")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if affected == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

// UpdateSignCount stores the signature counter from a verified assertion.
func (p *PostgreSQLCredentialRepository) UpdateSignCount(
	ctx context.Context,
	credentialID string,
	signCount uint32,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET sign_count = $1 WHERE credential_id = $2`

	result, err := querier.ExecContext(ctx, query, signCount, credentialID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update credential sign count")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if affected == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
