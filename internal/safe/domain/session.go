package domain

import (
	"time"

	"github.com/google/uuid"
)

// SafeSession is a time-bounded grant meaning "this safe is currently unlocked
// for this user."
//
// A session is meaningful only relative to wall-clock comparison against
// ExpiresAt; there is no separate revoked flag. Locking a safe deletes the
// rows. The state machine is LOCKED -> (unlock, owner-checked) -> UNLOCKED ->
// (expiry | explicit lock | safe deletion) -> LOCKED, with no other transition.
type SafeSession struct {
	// ID is the unique identifier for this session (UUIDv7).
	ID uuid.UUID
	// SafeID references the safe this session unlocks.
	SafeID uuid.UUID
	// UserID is the user the unlock applies to.
	UserID uuid.UUID
	// TokenHash is the SHA-256 hash of the unguessable session token. The
	// plaintext token is returned to the client exactly once and never stored.
	TokenHash string
	// SessionEncryptedDEK is the safe DEK re-wrapped client-side under a
	// session key; the server stores it without ever decrypting.
	SessionEncryptedDEK []byte
	// CreatedAt is the UTC timestamp when the unlock completed.
	CreatedAt time.Time
	// ExpiresAt is the UTC instant after which the session no longer counts
	// as unlocked.
	ExpiresAt time.Time
}

// IsValid reports whether the session still counts as unlocked at now.
// A session created with a zero-duration lifetime is never valid.
func (s *SafeSession) IsValid(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
