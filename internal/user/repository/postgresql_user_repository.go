// Package repository implements PostgreSQL persistence for users and tokens.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgreSQLUserRepository implements user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// Create inserts a new user. Returns ErrUserAlreadyExists when the email is taken.
func (p *PostgreSQLUserRepository) Create(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO users (id, name, email, public_key, encrypted_dek, dek_salt,
				  encryption_version, recovery_encrypted_dek, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID,
		user.Name,
		user.Email,
		user.PublicKey,
		user.EncryptedDEK,
		user.DEKSalt,
		user.EncryptionVersion,
		user.RecoveryEncryptedDEK,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return userDomain.ErrUserAlreadyExists
		}
		return apperrors.WrapStorage(err, "failed to create user")
	}
	return nil
}

// Get retrieves a user by ID.
func (p *PostgreSQLUserRepository) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	return p.getBy(ctx, "id = $1", userID)
}

// GetByEmail retrieves a user by email.
func (p *PostgreSQLUserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	return p.getBy(ctx, "email = $1", email)
}

func (p *PostgreSQLUserRepository) getBy(ctx context.Context, where string, arg any) (*userDomain.User, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, email, public_key, encrypted_dek, dek_salt,
				  encryption_version, recovery_encrypted_dek, created_at, updated_at
			  FROM users WHERE ` + where

	var user userDomain.User

	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PublicKey,
		&user.EncryptedDEK,
		&user.DEKSalt,
		&user.EncryptionVersion,
		&user.RecoveryEncryptedDEK,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrUserNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get user")
	}

	return &user, nil
}

// Exists reports whether a user with the given ID exists.
func (p *PostgreSQLUserRepository) Exists(ctx context.Context, userID uuid.UUID) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, apperrors.WrapStorage(err, "failed to check user existence")
	}
	return exists, nil
}

// UpdateEncryptionKeys persists the user's client-side key material.
func (p *PostgreSQLUserRepository) UpdateEncryptionKeys(ctx context.Context, user *userDomain.User) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE users SET public_key = $1, encrypted_dek = $2, dek_salt = $3,
				  encryption_version = $4, recovery_encrypted_dek = $5, updated_at = $6
			  WHERE id = $7`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.PublicKey,
		user.EncryptedDEK,
		user.DEKSalt,
		user.EncryptionVersion,
		user.RecoveryEncryptedDEK,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to update user encryption keys")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if affected == 0 {
		return userDomain.ErrUserNotFound
	}
	return nil
}

// NewPostgreSQLUserRepository creates a new PostgreSQL user repository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}
