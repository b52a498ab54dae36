// Package usecase defines business logic interfaces for hardware credential
// registration, assertion verification, and credential-bound key restoration.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
)

// CredentialRepository defines persistence operations for credentials.
// Implementations must support transaction-aware operations via context propagation.
type CredentialRepository interface {
	// Create stores a new credential. Returns ErrCredentialExists on duplicates.
	Create(ctx context.Context, cred *credentialDomain.Credential) error

	// GetByCredentialID retrieves a credential by its authenticator-assigned id.
	GetByCredentialID(ctx context.Context, credentialID string) (*credentialDomain.Credential, error)

	// ListByUser retrieves the user's credentials, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*credentialDomain.Credential, error)

	// Delete removes the user's credential. Returns ErrCredentialNotFound
	// when the user holds no such credential.
	Delete(ctx context.Context, userID uuid.UUID, credentialID string) error

	// UpdateCacheWrap stores the cached-key wrap on the credential row.
	UpdateCacheWrap(ctx context.Context, credentialID string, wrappedCacheKey, wrapNonce []byte) error

	// UpdateSignCount stores the signature counter from a verified assertion.
	UpdateSignCount(ctx context.Context, credentialID string, signCount uint32) error
}

// CredentialVerifier performs the actual authenticator protocol work:
// challenge issuance and signature verification. The implementation lives
// outside this service; everything here treats it as opaque.
type CredentialVerifier interface {
	// GenerateRegistrationChallenge issues a one-time challenge for
	// registering a new credential.
	GenerateRegistrationChallenge(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// VerifyRegistration checks a registration attestation and returns the
	// new credential's id, public key and initial sign count.
	VerifyRegistration(ctx context.Context, userID uuid.UUID, attestation []byte) (*credentialDomain.VerifiedRegistration, error)

	// GenerateAuthenticationChallenge issues a one-time signing challenge
	// for an existing credential.
	GenerateAuthenticationChallenge(ctx context.Context, credentialID string) ([]byte, error)

	// VerifyAuthentication checks a signed challenge and returns the
	// authenticator's new sign count. Verification failures wrap ErrForbidden.
	VerifyAuthentication(ctx context.Context, credentialID string, assertion []byte) (uint32, error)
}

// CredentialUseCase defines business logic operations for hardware
// credentials. GenerateChallenge and VerifyAssertion also serve the safe
// module's hardware unlock flow.
type CredentialUseCase interface {
	// BeginRegistration issues a registration challenge for the user.
	BeginRegistration(ctx context.Context, userID uuid.UUID) ([]byte, error)

	// CompleteRegistration verifies the attestation and persists the
	// credential. When the user currently has a cached decryption key, it is
	// opportunistically bound to the new credential; a failed bind never
	// fails the registration.
	CompleteRegistration(ctx context.Context, userID uuid.UUID, attestation []byte) (*credentialDomain.Credential, error)

	// List retrieves the user's credentials, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]*credentialDomain.Credential, error)

	// Delete removes the user's credential.
	Delete(ctx context.Context, userID uuid.UUID, credentialID string) error

	// BindCachedKey wraps the user's currently cached decryption key under
	// the credential and stores the wrap. Fails with ErrInvalidInput when no
	// key is cached.
	BindCachedKey(ctx context.Context, userID uuid.UUID, credentialID string) error

	// RestoreCachedKey unwraps the credential's bound key back into the
	// cache with the given ttl. Degrades on failure: a missing wrap or a
	// failed decrypt leaves the cache empty and returns nil, so legacy
	// content simply stays unavailable until the user re-authenticates.
	RestoreCachedKey(ctx context.Context, userID uuid.UUID, credentialID string, ttl time.Duration) error

	// GenerateChallenge issues a one-time signing challenge for the credential.
	GenerateChallenge(ctx context.Context, credentialID string) ([]byte, error)

	// VerifyAssertion checks a signed challenge, records the new sign count,
	// and restores the credential's bound cache key on success.
	VerifyAssertion(ctx context.Context, credentialID string, assertion []byte) error
}
