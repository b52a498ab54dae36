// Package usecase defines business logic interfaces for user accounts and
// bearer token authentication.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// UserRepository defines persistence operations for users.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// Create stores a new user. Returns ErrUserAlreadyExists when the email is taken.
	Create(ctx context.Context, user *userDomain.User) error

	// Get retrieves a user by ID. Returns ErrUserNotFound if not found.
	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, userID uuid.UUID) (bool, error)

	// UpdateEncryptionKeys persists the user's client-side key material.
	UpdateEncryptionKeys(ctx context.Context, user *userDomain.User) error
}

// TokenRepository defines persistence operations for bearer tokens.
type TokenRepository interface {
	// Create stores a new token row.
	Create(ctx context.Context, token *userDomain.UserToken) error

	// GetByTokenHash retrieves a token by its hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*userDomain.UserToken, error)

	// DeleteByTokenHash removes a token.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteExpired removes expired tokens and returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenService generates and hashes bearer tokens.
type TokenService interface {
	// GenerateToken creates a random token, returning the plain token and its hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token for lookup.
	HashToken(plainToken string) string
}

// UserUseCase defines business logic operations for user accounts.
type UserUseCase interface {
	// Create registers a new user account in the legacy encryption scheme.
	Create(ctx context.Context, name, email string) (*userDomain.User, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error)

	// SetupEncryption attaches client-generated key material and moves the
	// account to the envelope scheme.
	SetupEncryption(ctx context.Context, userID uuid.UUID, publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK []byte) (*userDomain.User, error)
}

// AuthUseCase defines business logic operations for bearer token authentication.
// Token issuance happens after an upstream identity check; this service only
// manages token lifecycle and lookup.
type AuthUseCase interface {
	// IssueToken creates a bearer token for the user. The plain token is
	// returned once and never stored.
	IssueToken(ctx context.Context, userID uuid.UUID) (*userDomain.IssueTokenOutput, error)

	// Authenticate resolves a plain bearer token to its user. Unknown and
	// expired tokens both report ErrInvalidCredentials.
	Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error)

	// RevokeToken removes the token. Revoking an unknown token reports
	// ErrInvalidCredentials, same as using one.
	RevokeToken(ctx context.Context, plainToken string) error

	// SweepExpiredTokens deletes expired token rows and returns the count removed.
	SweepExpiredTokens(ctx context.Context) (int64, error)
}
