package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// PostgreSQLSessionRepository implements SafeSession persistence for PostgreSQL.
//
// Sessions carry no revoked flag; locking deletes rows. Every read therefore
// filters on expires_at so an expired row behaves exactly like a missing one.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// Create inserts a new SafeSession into the PostgreSQL database.
func (p *PostgreSQLSessionRepository) Create(ctx context.Context, session *safeDomain.SafeSession) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO safe_sessions (id, safe_id, user_id, token_hash, session_encrypted_dek, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		session.ID,
		session.SafeID,
		session.UserID,
		session.TokenHash,
		session.SessionEncryptedDEK,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to create safe session")
	}
	return nil
}

// GetActive retrieves the most recent unexpired session for the given safe and
// user, using now as the expiry reference. Returns ErrSessionNotFound when the
// safe is locked for that user.
func (p *PostgreSQLSessionRepository) GetActive(
	ctx context.Context,
	safeID, userID uuid.UUID,
	now time.Time,
) (*safeDomain.SafeSession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, safe_id, user_id, token_hash, session_encrypted_dek, created_at, expires_at
			  FROM safe_sessions
			  WHERE safe_id = $1 AND user_id = $2 AND expires_at > $3
			  ORDER BY expires_at DESC
			  LIMIT 1`

	var session safeDomain.SafeSession

	err := querier.QueryRowContext(ctx, query, safeID, userID, now).Scan(
		&session.ID,
		&session.SafeID,
		&session.UserID,
		&session.TokenHash,
		&session.SessionEncryptedDEK,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, safeDomain.ErrSessionNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get safe session")
	}

	return &session, nil
}

// GetByTokenHash retrieves an unexpired session by its token hash.
func (p *PostgreSQLSessionRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*safeDomain.SafeSession, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, safe_id, user_id, token_hash, session_encrypted_dek, created_at, expires_at
			  FROM safe_sessions
			  WHERE token_hash = $1 AND expires_at > $2`

	var session safeDomain.SafeSession

	err := querier.QueryRowContext(ctx, query, tokenHash, now).Scan(
		&session.ID,
		&session.SafeID,
		&session.UserID,
		&session.TokenHash,
		&session.SessionEncryptedDEK,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, safeDomain.ErrSessionNotFound
		}
		return nil, apperrors.WrapStorage(err, "failed to get safe session by token")
	}

	return &session, nil
}

// DeleteBySafeAndUser removes every session the user holds on the safe.
// Locking an already-locked safe deletes zero rows and is not an error.
func (p *PostgreSQLSessionRepository) DeleteBySafeAndUser(ctx context.Context, safeID, userID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM safe_sessions WHERE safe_id = $1 AND user_id = $2`

	_, err := querier.ExecContext(ctx, query, safeID, userID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete safe sessions")
	}
	return nil
}

// DeleteBySafe removes every session on the safe. Used when a safe is deleted
// so no session can outlive its safe.
func (p *PostgreSQLSessionRepository) DeleteBySafe(ctx context.Context, safeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM safe_sessions WHERE safe_id = $1`

	_, err := querier.ExecContext(ctx, query, safeID)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete safe sessions")
	}
	return nil
}

// DeleteExpired removes sessions whose expiry is at or before now and returns
// the number of rows removed. Expired rows are already invisible to reads;
// this reclaims storage.
func (p *PostgreSQLSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM safe_sessions WHERE expires_at <= $1`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete expired safe sessions")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to delete expired safe sessions")
	}

	return affected, nil
}

// NewPostgreSQLSessionRepository creates a new PostgreSQL SafeSession repository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{db: db}
}
