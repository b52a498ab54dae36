package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// PostgreSQLTokenRepository implements bearer token persistence for PostgreSQL.
type PostgreSQLTokenRepository struct {
	db *sql.DB
}

// Create inserts a new token row.
func (p *PostgreSQLTokenRepository) Create(ctx context.Context, token *userDomain.UserToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO user_tokens (id, user_id, token_hash, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.UserID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create token")
	}
	return nil
}

// GetByTokenHash retrieves a token by its hash. Expiry is checked by the
// caller so that expired and missing tokens can share one error.
func (p *PostgreSQLTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*userDomain.UserToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, token_hash, expires_at, created_at
			  FROM user_tokens WHERE token_hash = $1`

	var token userDomain.UserToken

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, userDomain.ErrTokenNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get token")
	}

	return &token, nil
}

// DeleteByTokenHash removes a token. Returns ErrTokenNotFound when no row matched.
func (p *PostgreSQLTokenRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM user_tokens WHERE token_hash = $1`

	result, err := querier.ExecContext(ctx, query, tokenHash)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, "failed to get affected rows")
	}
	if affected == 0 {
		return userDomain.ErrTokenNotFound
	}
	return nil
}

// DeleteExpired removes expired tokens and returns the number removed.
func (p *PostgreSQLTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM user_tokens WHERE expires_at <= $1`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete expired tokens")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to get affected rows")
	}
	return affected, nil
}

// NewPostgreSQLTokenRepository creates a new PostgreSQL token repository.
func NewPostgreSQLTokenRepository(db *sql.DB) *PostgreSQLTokenRepository {
	return &PostgreSQLTokenRepository{db: db}
}
