// Package service provides the credential-bound key wrapping used to restore
// a user's cached decryption key after a hardware assertion.
package service

import (
	"github.com/google/uuid"
)

// CacheKeyWrapper wraps and unwraps a user's cached decryption key under a
// key derived from the credential id. The derivation is deterministic, so
// holding the credential id (proven by a verified assertion) is what grants
// the unwrap.
type CacheKeyWrapper interface {
	// Wrap encrypts key under the credential-derived wrapping key. The
	// ciphertext is bound to userID via AAD.
	Wrap(userID uuid.UUID, credentialID string, key []byte) (ciphertext, nonce []byte, err error)

	// Unwrap reverses Wrap. Fails when the ciphertext was wrapped for a
	// different user or credential, or was tampered with.
	Unwrap(userID uuid.UUID, credentialID string, ciphertext, nonce []byte) ([]byte, error)
}
