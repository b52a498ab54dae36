// Package domain defines the core domain models for safes: independently-keyed
// encrypted subtrees unlockable only via password or hardware credential.
//
// A safe row stores ciphertext only. The plaintext DEK exists on the server
// solely inside the process-local key cache, and only for legacy decryption
// paths; the safe lifecycle itself never requires the server to decrypt.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// maxSafeNameLength bounds user-supplied safe names.
const maxSafeNameLength = 255

// Safe represents an independently-keyed vault owned by exactly one user.
type Safe struct {
	// ID is the unique identifier for this safe (UUIDv7).
	ID uuid.UUID
	// OwnerID is the sole owner; rename, delete and unlock-challenge are owner-only.
	OwnerID uuid.UUID
	// Name is the user-facing label.
	Name string
	// UnlockType records which union member the ciphertext fields belong to.
	UnlockType UnlockType
	// EncryptedDEK is the safe DEK wrapped under the unlock method's KEK.
	EncryptedDEK []byte
	// Salt is the KDF salt; set iff UnlockType is password.
	Salt []byte
	// CredentialID references the hardware credential; set iff UnlockType is hardware.
	CredentialID string
	// RecoveryEncryptedDEK is an optional second wrap of the DEK under a
	// recovery key; orthogonal to UnlockType.
	RecoveryEncryptedDEK []byte
	// EscrowWrappedRecoveryDEK is RecoveryEncryptedDEK additionally wrapped
	// under the org KMS escrow key, when escrow is configured.
	EscrowWrappedRecoveryDEK []byte
	// CreatedAt is the UTC timestamp when the safe was created.
	CreatedAt time.Time
}

// NewSafe constructs a Safe from a validated unlock method. The method union
// guarantees the per-type required fields are present; this constructor only
// validates the shared fields.
func NewSafe(ownerID uuid.UUID, name string, method UnlockMethod, recoveryEncryptedDEK []byte) (*Safe, error) {
	if ownerID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "owner_id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name must not be blank")
	}
	if len(name) > maxSafeNameLength {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "name is too long")
	}
	if method == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unlock method is required")
	}
	if len(recoveryEncryptedDEK) > 0 && len(recoveryEncryptedDEK) < minEncryptedDEKBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "recovery_encrypted_dek is too short")
	}

	safe := &Safe{
		ID:                   uuid.Must(uuid.NewV7()),
		OwnerID:              ownerID,
		Name:                 name,
		UnlockType:           method.Type(),
		EncryptedDEK:         method.WrappedDEK(),
		RecoveryEncryptedDEK: recoveryEncryptedDEK,
		CreatedAt:            time.Now().UTC(),
	}

	switch m := method.(type) {
	case PasswordUnlock:
		safe.Salt = m.Salt
	case HardwareUnlock:
		safe.CredentialID = m.CredentialID
	}

	return safe, nil
}

// Method reconstructs the unlock method union from the persisted fields.
// Returns ErrInvalidInput if the stored row violates the per-type invariants.
func (s *Safe) Method() (UnlockMethod, error) {
	switch s.UnlockType {
	case UnlockTypePassword:
		return NewPasswordUnlock(s.EncryptedDEK, s.Salt)
	case UnlockTypeHardware:
		return NewHardwareUnlock(s.EncryptedDEK, s.CredentialID)
	default:
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown unlock type")
	}
}

// IsOwner reports whether userID owns this safe.
func (s *Safe) IsOwner(userID uuid.UUID) bool {
	return s.OwnerID == userID
}
