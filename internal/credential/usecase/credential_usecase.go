// Package usecase implements business logic orchestration for hardware credentials.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
	credentialService "github.com/allisson/photosafe/internal/credential/service"
	apperrors "github.com/allisson/photosafe/internal/errors"
	"github.com/allisson/photosafe/internal/keycache"
)

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	repo     CredentialRepository
	verifier CredentialVerifier
	wrapper  credentialService.CacheKeyWrapper
	keyCache *keycache.Cache
	logger   *slog.Logger

	// cacheTTL bounds how long a restored key lives in the cache.
	cacheTTL time.Duration
}

// BeginRegistration issues a registration challenge for the user.
func (c *credentialUseCase) BeginRegistration(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if userID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "user_id is required")
	}
	return c.verifier.GenerateRegistrationChallenge(ctx, userID)
}

// CompleteRegistration verifies the attestation, persists the credential, and
// opportunistically binds the user's cached key to it.
func (c *credentialUseCase) CompleteRegistration(
	ctx context.Context,
	userID uuid.UUID,
	attestation []byte,
) (*credentialDomain.Credential, error) {
	verified, err := c.verifier.VerifyRegistration(ctx, userID, attestation)
	if err != nil {
		return nil, err
	}

	cred, err := credentialDomain.NewCredential(userID, verified.CredentialID, verified.PublicKey, verified.SignCount)
	if err != nil {
		return nil, err
	}

	if key, ok := c.keyCache.Get(userID); ok {
		ciphertext, nonce, err := c.wrapper.Wrap(userID, cred.CredentialID, key)
		if err != nil {
			// The bind is opportunistic: the credential registers unbound
			// and the key can be bound later via BindCachedKey.
			c.logger.Warn("cache key bind failed, registering credential unbound",
				slog.String("credential_id", cred.CredentialID), slog.Any("error", err))
		} else {
			cred.WrappedCacheKey = ciphertext
			cred.WrapNonce = nonce
		}
	}

	if err := c.repo.Create(ctx, cred); err != nil {
		return nil, err
	}

	return cred, nil
}

// List retrieves the user's credentials, newest first.
func (c *credentialUseCase) List(ctx context.Context, userID uuid.UUID) ([]*credentialDomain.Credential, error) {
	return c.repo.ListByUser(ctx, userID)
}

// Delete removes the user's credential.
func (c *credentialUseCase) Delete(ctx context.Context, userID uuid.UUID, credentialID string) error {
	return c.repo.Delete(ctx, userID, credentialID)
}

// BindCachedKey wraps the user's currently cached key under the credential.
func (c *credentialUseCase) BindCachedKey(ctx context.Context, userID uuid.UUID, credentialID string) error {
	cred, err := c.ownedCredential(ctx, userID, credentialID)
	if err != nil {
		return err
	}

	key, ok := c.keyCache.Get(userID)
	if !ok {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "no cached key to bind")
	}

	ciphertext, nonce, err := c.wrapper.Wrap(userID, cred.CredentialID, key)
	if err != nil {
		return err
	}

	return c.repo.UpdateCacheWrap(ctx, cred.CredentialID, ciphertext, nonce)
}

// RestoreCachedKey unwraps the credential's bound key back into the cache.
// Failures degrade: the cache stays empty and the caller sees no error.
func (c *credentialUseCase) RestoreCachedKey(
	ctx context.Context,
	userID uuid.UUID,
	credentialID string,
	ttl time.Duration,
) error {
	cred, err := c.ownedCredential(ctx, userID, credentialID)
	if err != nil {
		return err
	}

	if !cred.HasCacheWrap() {
		return nil
	}

	key, err := c.wrapper.Unwrap(userID, cred.CredentialID, cred.WrappedCacheKey, cred.WrapNonce)
	if err != nil {
		c.logger.Warn("cache key unwrap failed, leaving cache empty",
			slog.String("credential_id", cred.CredentialID), slog.Any("error", err))
		return nil
	}

	c.keyCache.Set(userID, key, ttl)
	return nil
}

// GenerateChallenge issues a one-time signing challenge for the credential.
func (c *credentialUseCase) GenerateChallenge(ctx context.Context, credentialID string) ([]byte, error) {
	if _, err := c.repo.GetByCredentialID(ctx, credentialID); err != nil {
		return nil, err
	}
	return c.verifier.GenerateAuthenticationChallenge(ctx, credentialID)
}

// VerifyAssertion checks a signed challenge, records the new sign count, and
// restores the bound cache key.
func (c *credentialUseCase) VerifyAssertion(ctx context.Context, credentialID string, assertion []byte) error {
	signCount, err := c.verifier.VerifyAuthentication(ctx, credentialID, assertion)
	if err != nil {
		return err
	}

	cred, err := c.repo.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return err
	}

	if err := c.repo.UpdateSignCount(ctx, credentialID, signCount); err != nil {
		return err
	}

	return c.RestoreCachedKey(ctx, cred.UserID, credentialID, c.cacheTTL)
}

// ownedCredential loads the credential and checks it belongs to userID.
// Foreign credentials report ErrCredentialNotFound, same as missing ones.
func (c *credentialUseCase) ownedCredential(
	ctx context.Context,
	userID uuid.UUID,
	credentialID string,
) (*credentialDomain.Credential, error) {
	cred, err := c.repo.GetByCredentialID(ctx, credentialID)
	if err != nil {
		return nil, err
	}
	if cred.UserID != userID {
		return nil, credentialDomain.ErrCredentialNotFound
	}
	return cred, nil
}

// NewCredentialUseCase creates a new CredentialUseCase with the provided dependencies.
func NewCredentialUseCase(
	repo CredentialRepository,
	verifier CredentialVerifier,
	wrapper credentialService.CacheKeyWrapper,
	keyCache *keycache.Cache,
	logger *slog.Logger,
	cacheTTL time.Duration,
) CredentialUseCase {
	return &credentialUseCase{
		repo:     repo,
		verifier: verifier,
		wrapper:  wrapper,
		keyCache: keyCache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}
