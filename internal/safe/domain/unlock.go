package domain

import (
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// UnlockType identifies how a safe's DEK ciphertext can be unwrapped.
type UnlockType string

const (
	// UnlockTypePassword means the DEK is wrapped under a password-derived KEK.
	// The server hands the client {encrypted_dek, salt} and the client
	// re-derives the KEK locally; the server never sees the password or the
	// plaintext DEK.
	UnlockTypePassword UnlockType = "password"

	// UnlockTypeHardware means unlocking requires a hardware credential.
	// Challenge generation and signature verification are delegated to the
	// external credential-verification collaborator.
	UnlockTypeHardware UnlockType = "hardware"
)

// Sizes for opaque key material accepted by safe constructors. The server
// treats the blobs as opaque; these are sanity bounds only.
const (
	minEncryptedDEKBytes = 16
	minSaltBytes         = 8
)

// UnlockMethod is the tagged union of ways a safe can be unlocked. A missing
// required field (salt for password safes, credential id for hardware safes)
// is a construction-time error, not a runtime null-check.
type UnlockMethod interface {
	// Type returns the unlock type tag.
	Type() UnlockType
	// WrappedDEK returns the DEK ciphertext stored for this safe.
	WrappedDEK() []byte

	// sealed marker so the union stays closed.
	isUnlockMethod()
}

// PasswordUnlock wraps a safe DEK under a password-derived KEK.
type PasswordUnlock struct {
	EncryptedDEK []byte
	Salt         []byte
}

// NewPasswordUnlock builds a PasswordUnlock, validating both fields.
func NewPasswordUnlock(encryptedDEK, salt []byte) (PasswordUnlock, error) {
	if len(encryptedDEK) < minEncryptedDEKBytes {
		return PasswordUnlock{}, apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted_dek is missing or too short")
	}
	if len(salt) < minSaltBytes {
		return PasswordUnlock{}, apperrors.Wrap(apperrors.ErrInvalidInput, "salt is missing or too short")
	}
	return PasswordUnlock{EncryptedDEK: encryptedDEK, Salt: salt}, nil
}

// Type implements UnlockMethod.
func (p PasswordUnlock) Type() UnlockType { return UnlockTypePassword }

// WrappedDEK implements UnlockMethod.
func (p PasswordUnlock) WrappedDEK() []byte { return p.EncryptedDEK }

func (p PasswordUnlock) isUnlockMethod() {}

// HardwareUnlock wraps a safe DEK bound to a hardware credential.
type HardwareUnlock struct {
	EncryptedDEK []byte
	CredentialID string
}

// NewHardwareUnlock builds a HardwareUnlock, validating both fields.
func NewHardwareUnlock(encryptedDEK []byte, credentialID string) (HardwareUnlock, error) {
	if len(encryptedDEK) < minEncryptedDEKBytes {
		return HardwareUnlock{}, apperrors.Wrap(apperrors.ErrInvalidInput, "encrypted_dek is missing or too short")
	}
	if credentialID == "" {
		return HardwareUnlock{}, apperrors.Wrap(apperrors.ErrInvalidInput, "credential_id is required")
	}
	return HardwareUnlock{EncryptedDEK: encryptedDEK, CredentialID: credentialID}, nil
}

// Type implements UnlockMethod.
func (h HardwareUnlock) Type() UnlockType { return UnlockTypeHardware }

// WrappedDEK implements UnlockMethod.
func (h HardwareUnlock) WrappedDEK() []byte { return h.EncryptedDEK }

func (h HardwareUnlock) isUnlockMethod() {}

// UnlockChallenge is the payload handed to a client that wants to unlock a
// safe. For password safes it carries the ciphertext and salt so the client
// can re-derive the KEK locally. For hardware safes it carries the signing
// challenge produced by the credential-verification collaborator.
type UnlockChallenge struct {
	Type         UnlockType
	EncryptedDEK []byte
	Salt         []byte
	// Challenge is the hardware signing challenge; nil for password safes.
	Challenge []byte
	// CredentialID identifies which credential must sign; empty for password safes.
	CredentialID string
}
