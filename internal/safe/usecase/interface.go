// Package usecase defines business logic interfaces for safe lifecycle and
// unlock session management.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// SafeRepository defines persistence operations for safes.
// Implementations must support transaction-aware operations via context propagation.
type SafeRepository interface {
	// Create stores a new safe in the repository.
	Create(ctx context.Context, safe *safeDomain.Safe) error

	// Get retrieves a safe by ID. Returns ErrSafeNotFound if not found.
	Get(ctx context.Context, safeID uuid.UUID) (*safeDomain.Safe, error)

	// ListByOwner retrieves the safes owned by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*safeDomain.Safe, error)

	// UpdateName renames a safe. Returns ErrSafeNotFound if not found.
	UpdateName(ctx context.Context, safeID uuid.UUID, name string) error

	// Delete removes a safe. Returns ErrSafeNotFound if not found.
	Delete(ctx context.Context, safeID uuid.UUID) error
}

// SessionRepository defines persistence operations for safe unlock sessions.
// Implementations must support transaction-aware operations via context propagation.
type SessionRepository interface {
	// Create stores a new session in the repository.
	Create(ctx context.Context, session *safeDomain.SafeSession) error

	// GetActive retrieves the most recent unexpired session for the safe and
	// user. Returns ErrSessionNotFound when the safe is locked for that user.
	GetActive(ctx context.Context, safeID, userID uuid.UUID, now time.Time) (*safeDomain.SafeSession, error)

	// GetByTokenHash retrieves an unexpired session by its token hash.
	GetByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*safeDomain.SafeSession, error)

	// DeleteBySafeAndUser removes every session the user holds on the safe.
	// Deleting zero rows is not an error.
	DeleteBySafeAndUser(ctx context.Context, safeID, userID uuid.UUID) error

	// DeleteBySafe removes every session on the safe.
	DeleteBySafe(ctx context.Context, safeID uuid.UUID) error

	// DeleteExpired removes expired sessions and returns the number removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ItemPurger removes the encrypted items contained in a safe. Implemented by
// the envelope module's item repository; deleting the items cascades their
// key and share rows.
type ItemPurger interface {
	DeleteBySafe(ctx context.Context, safeID uuid.UUID) error
}

// HardwareChallenger issues and verifies hardware-credential signing
// challenges. Implemented by the credential module.
type HardwareChallenger interface {
	// GenerateChallenge issues a one-time signing challenge for the credential.
	GenerateChallenge(ctx context.Context, credentialID string) ([]byte, error)

	// VerifyAssertion checks a signed challenge. Returns ErrForbidden-wrapped
	// errors on verification failure.
	VerifyAssertion(ctx context.Context, credentialID string, assertion []byte) error
}

// SafeUseCase defines business logic operations for the safe lifecycle.
// Rename, delete and unlock-challenge are owner-only; ownership failures are
// reported with the same error as lock-state failures so responses do not
// reveal which check failed.
type SafeUseCase interface {
	// Create persists a new safe from a validated unlock method. When a
	// recovery wrap is supplied and escrow is configured, the recovery
	// ciphertext is additionally wrapped under the org KMS key.
	Create(ctx context.Context, input *safeDomain.CreateSafeInput) (*safeDomain.Safe, error)

	// Get retrieves a safe. Non-owners get ErrNotSafeOwner.
	Get(ctx context.Context, safeID, requesterID uuid.UUID) (*safeDomain.Safe, error)

	// List retrieves the requester's safes, newest first.
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*safeDomain.Safe, error)

	// Rename changes the safe name. Owner-only.
	Rename(ctx context.Context, safeID, requesterID uuid.UUID, name string) error

	// Delete removes the safe, every session on it, and every item it
	// contains in one transaction, so no session or vaulted ciphertext can
	// outlive its safe. Owner-only.
	Delete(ctx context.Context, safeID, requesterID uuid.UUID) error

	// GetUnlockChallenge returns the material the client needs to unlock:
	// ciphertext and salt for password safes, a signing challenge for
	// hardware safes. Owner-only.
	GetUnlockChallenge(ctx context.Context, safeID, requesterID uuid.UUID) (*safeDomain.UnlockChallenge, error)
}

// SessionUseCase defines business logic operations for unlock sessions. A safe
// is unlocked for a user exactly when that user holds an unexpired session on
// it; there is no other unlocked state.
type SessionUseCase interface {
	// CompleteUnlock finishes the unlock handshake and creates a session.
	// Owner-only. For hardware safes the assertion must verify. The requested
	// lifetime is clamped to the configured maximum; zero is allowed and
	// yields an already-expired session.
	CompleteUnlock(ctx context.Context, input *safeDomain.CompleteUnlockInput) (*safeDomain.CompleteUnlockOutput, error)

	// IsUnlocked reports whether the user holds a live session on the safe.
	// Missing sessions are a false result, not an error.
	IsUnlocked(ctx context.Context, safeID, userID uuid.UUID) (bool, error)

	// GetActiveSession retrieves the user's live session on the safe.
	// Returns ErrSessionNotFound when the safe is locked for that user.
	GetActiveSession(ctx context.Context, safeID, userID uuid.UUID) (*safeDomain.SafeSession, error)

	// Lock removes every session the user holds on the safe and clears the
	// user's cached key material. Locking an already-locked safe succeeds.
	Lock(ctx context.Context, safeID, userID uuid.UUID) error

	// LockAll removes every session on the safe for every user, a full-safe
	// lockdown. Owner-only; idempotent like Lock.
	LockAll(ctx context.Context, safeID, requesterID uuid.UUID) error

	// SweepExpired deletes expired session rows and returns the count removed.
	SweepExpired(ctx context.Context) (int64, error)
}
