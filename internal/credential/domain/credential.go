// Package domain defines the core domain models for hardware credentials.
//
// A credential is an authenticator-backed public key registered by a user.
// Besides unlocking hardware-bound safes, a credential can carry a wrap of
// the user's cached decryption key so that a successful assertion restores
// legacy-content access without a password prompt.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// minPublicKeyBytes is a sanity bound on authenticator public key blobs.
const minPublicKeyBytes = 32

// Credential is a registered hardware authenticator credential.
type Credential struct {
	// ID is the unique identifier for this row (UUIDv7).
	ID uuid.UUID
	// UserID is the user who registered the credential.
	UserID uuid.UUID
	// CredentialID is the authenticator-assigned identifier, unique across users.
	CredentialID string
	// PublicKey is the authenticator's public key used to verify assertions.
	PublicKey []byte
	// SignCount is the authenticator's signature counter from the last
	// verified assertion. A counter that goes backwards indicates a cloned
	// authenticator and is rejected by the verifier.
	SignCount uint32
	// WrappedCacheKey is the user's cached decryption key encrypted under a
	// key derived from CredentialID. Empty when no key has been bound.
	WrappedCacheKey []byte
	// WrapNonce is the AEAD nonce for WrappedCacheKey.
	WrapNonce []byte
	// CreatedAt is the UTC timestamp when the credential was registered.
	CreatedAt time.Time
}

// NewCredential constructs a Credential from verified registration output.
func NewCredential(userID uuid.UUID, credentialID string, publicKey []byte, signCount uint32) (*Credential, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user_id is required")
	}
	if credentialID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "credential_id is required")
	}
	if len(publicKey) < minPublicKeyBytes {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "public_key is missing or too short")
	}
	return &Credential{
		ID:           uuid.Must(uuid.NewV7()),
		UserID:       userID,
		CredentialID: credentialID,
		PublicKey:    publicKey,
		SignCount:    signCount,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// HasCacheWrap reports whether a cached-key wrap is bound to the credential.
func (c *Credential) HasCacheWrap() bool {
	return len(c.WrappedCacheKey) > 0 && len(c.WrapNonce) > 0
}

// VerifiedRegistration is what the credential verifier returns after checking
// a registration attestation.
type VerifiedRegistration struct {
	CredentialID string
	PublicKey    []byte
	SignCount    uint32
}
