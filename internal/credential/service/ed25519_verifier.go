package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// challengeBytes is the size of issued challenges.
const challengeBytes = 32

// defaultChallengeTTL is how long an issued challenge stays valid.
const defaultChallengeTTL = 5 * time.Minute

// PublicKeySource looks up a credential's stored public key and sign count.
// Satisfied by the credential repository.
type PublicKeySource interface {
	GetByCredentialID(ctx context.Context, credentialID string) (*credentialDomain.Credential, error)
}

// registrationAttestation is the wire format clients submit after signing a
// registration challenge with a fresh authenticator key.
type registrationAttestation struct {
	CredentialID string `json:"credential_id"`
	PublicKey    []byte `json:"public_key"`
	Signature    []byte `json:"signature"`
}

// authenticationAssertion is the wire format clients submit after signing an
// authentication challenge.
type authenticationAssertion struct {
	Signature []byte `json:"signature"`
	SignCount uint32 `json:"sign_count"`
}

// challengeEntry holds one outstanding challenge.
type challengeEntry struct {
	challenge []byte
	expiresAt time.Time
}

// Ed25519Verifier implements challenge issuance and Ed25519 signature
// verification for authenticator credentials. Challenges are one-time and
// held in memory; a restart simply invalidates outstanding challenges.
type Ed25519Verifier struct {
	keys PublicKeySource
	ttl  time.Duration
	now  func() time.Time

	mu         sync.Mutex
	challenges map[string]challengeEntry
}

// NewEd25519Verifier creates an Ed25519Verifier backed by the given public
// key source.
func NewEd25519Verifier(keys PublicKeySource) *Ed25519Verifier {
	return &Ed25519Verifier{
		keys:       keys,
		ttl:        defaultChallengeTTL,
		now:        func() time.Time { return time.Now().UTC() },
		challenges: make(map[string]challengeEntry),
	}
}

// GenerateRegistrationChallenge issues a one-time challenge for registering a
// new credential. A new challenge replaces any outstanding one for the user.
func (v *Ed25519Verifier) GenerateRegistrationChallenge(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	return v.issue("reg:" + userID.String())
}

// VerifyRegistration checks a registration attestation against the user's
// outstanding challenge and returns the new credential's id, public key and
// initial sign count.
func (v *Ed25519Verifier) VerifyRegistration(
	ctx context.Context,
	userID uuid.UUID,
	attestation []byte,
) (*credentialDomain.VerifiedRegistration, error) {
	var att registrationAttestation
	if err := json.Unmarshal(attestation, &att); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "malformed attestation")
	}
	if att.CredentialID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "attestation credential_id is required")
	}
	if len(att.PublicKey) != ed25519.PublicKeySize {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "attestation public_key must be an ed25519 public key")
	}

	challenge, ok := v.consume("reg:" + userID.String())
	if !ok {
		return nil, credentialDomain.ErrAssertionInvalid
	}

	if !ed25519.Verify(ed25519.PublicKey(att.PublicKey), challenge, att.Signature) {
		return nil, credentialDomain.ErrAssertionInvalid
	}

	return &credentialDomain.VerifiedRegistration{
		CredentialID: att.CredentialID,
		PublicKey:    att.PublicKey,
		SignCount:    0,
	}, nil
}

// GenerateAuthenticationChallenge issues a one-time signing challenge for an
// existing credential.
func (v *Ed25519Verifier) GenerateAuthenticationChallenge(ctx context.Context, credentialID string) ([]byte, error) {
	if _, err := v.keys.GetByCredentialID(ctx, credentialID); err != nil {
		return nil, err
	}
	return v.issue("auth:" + credentialID)
}

// VerifyAuthentication checks a signed challenge and returns the
// authenticator's new sign count. A sign count that does not advance
// indicates a cloned authenticator and is rejected.
func (v *Ed25519Verifier) VerifyAuthentication(
	ctx context.Context,
	credentialID string,
	assertion []byte,
) (uint32, error) {
	var asrt authenticationAssertion
	if err := json.Unmarshal(assertion, &asrt); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "malformed assertion")
	}

	cred, err := v.keys.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return 0, err
	}

	challenge, ok := v.consume("auth:" + credentialID)
	if !ok {
		return 0, credentialDomain.ErrAssertionInvalid
	}

	if len(cred.PublicKey) != ed25519.PublicKeySize {
		return 0, credentialDomain.ErrAssertionInvalid
	}
	if !ed25519.Verify(ed25519.PublicKey(cred.PublicKey), challenge, asrt.Signature) {
		return 0, credentialDomain.ErrAssertionInvalid
	}
	if asrt.SignCount <= cred.SignCount {
		return 0, credentialDomain.ErrAssertionInvalid
	}

	return asrt.SignCount, nil
}

// issue creates and stores a fresh challenge under key.
func (v *Ed25519Verifier) issue(key string) ([]byte, error) {
	challenge := make([]byte, challengeBytes)
	if _, err := rand.Read(challenge); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, "failed to generate challenge")
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.pruneLocked()
	v.challenges[key] = challengeEntry{
		challenge: challenge,
		expiresAt: v.now().Add(v.ttl),
	}

	return challenge, nil
}

// consume removes and returns the outstanding challenge for key, reporting
// false when none exists or it has expired.
func (v *Ed25519Verifier) consume(key string) ([]byte, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.challenges[key]
	if !ok {
		return nil, false
	}
	delete(v.challenges, key)

	if v.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.challenge, true
}

// pruneLocked drops expired challenges. Caller holds v.mu.
func (v *Ed25519Verifier) pruneLocked() {
	now := v.now()
	for key, entry := range v.challenges {
		if now.After(entry.expiresAt) {
			delete(v.challenges, key)
		}
	}
}
