// Package domain defines the core user domain entities and types.
//
// Users carry their own client-side encryption state: the server stores
// wrapped key material and a public key for receiving shares, never a
// plaintext key or a password-derived key.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// Encryption scheme versions for a user's account content.
const (
	// EncryptionVersionLegacy marks accounts whose content the server can
	// still decrypt with the user's cached key.
	EncryptionVersionLegacy = 1

	// EncryptionVersionEnvelope marks accounts fully migrated to client-side
	// envelope encryption.
	EncryptionVersionEnvelope = 2
)

// User represents a user account.
type User struct {
	ID    uuid.UUID
	Name  string
	Email string

	// PublicKey is the user's client-generated public key, used by other
	// users to wrap content keys when sharing. Empty until encryption setup.
	PublicKey []byte
	// EncryptedDEK is the user's data encryption key wrapped under a
	// password-derived key on the client. Empty until encryption setup.
	EncryptedDEK []byte
	// DEKSalt is the client-side KDF salt for EncryptedDEK.
	DEKSalt []byte
	// EncryptionVersion records which encryption scheme covers the account.
	EncryptionVersion int
	// RecoveryEncryptedDEK is the DEK wrapped under a recovery code. Empty
	// when the user declined recovery setup.
	RecoveryEncryptedDEK []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user account in the legacy encryption scheme. Client-side
// key material is attached later via SetupEncryption.
func NewUser(name, email string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	now := time.Now().UTC()
	return &User{
		ID:                uuid.Must(uuid.NewV7()),
		Name:              name,
		Email:             strings.ToLower(email),
		EncryptionVersion: EncryptionVersionLegacy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// SetupEncryption attaches client-generated key material and moves the
// account to the envelope scheme. The recovery wrap is optional.
func (u *User) SetupEncryption(publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK []byte) error {
	if len(publicKey) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "public_key is required")
	}
	if len(encryptedDEK) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted_dek is required")
	}
	if len(dekSalt) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "dek_salt is required")
	}

	u.PublicKey = publicKey
	u.EncryptedDEK = encryptedDEK
	u.DEKSalt = dekSalt
	u.RecoveryEncryptedDEK = recoveryEncryptedDEK
	u.EncryptionVersion = EncryptionVersionEnvelope
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// HasEncryptionSetup reports whether client-side key material is attached.
func (u *User) HasEncryptionSetup() bool {
	return u.EncryptionVersion >= EncryptionVersionEnvelope
}
