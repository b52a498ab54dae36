package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
	"github.com/allisson/photosafe/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordOperation(ctx, "credentials", operation, status)
	c.metrics.RecordDuration(ctx, "credentials", operation, time.Since(start), status)
}

// BeginRegistration records metrics for registration challenge issuance.
func (c *credentialUseCaseWithMetrics) BeginRegistration(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	start := time.Now()
	challenge, err := c.next.BeginRegistration(ctx, userID)
	c.record(ctx, "credential_register_begin", start, err)
	return challenge, err
}

// CompleteRegistration records metrics for registration completion.
func (c *credentialUseCaseWithMetrics) CompleteRegistration(
	ctx context.Context,
	userID uuid.UUID,
	attestation []byte,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	cred, err := c.next.CompleteRegistration(ctx, userID, attestation)
	c.record(ctx, "credential_register_complete", start, err)
	return cred, err
}

// List records metrics for credential listing.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	userID uuid.UUID,
) ([]*credentialDomain.Credential, error) {
	start := time.Now()
	creds, err := c.next.List(ctx, userID)
	c.record(ctx, "credential_list", start, err)
	return creds, err
}

// Delete records metrics for credential deletion.
func (c *credentialUseCaseWithMetrics) Delete(ctx context.Context, userID uuid.UUID, credentialID string) error {
	start := time.Now()
	err := c.next.Delete(ctx, userID, credentialID)
	c.record(ctx, "credential_delete", start, err)
	return err
}

// BindCachedKey records metrics for cache key binding.
func (c *credentialUseCaseWithMetrics) BindCachedKey(ctx context.Context, userID uuid.UUID, credentialID string) error {
	start := time.Now()
	err := c.next.BindCachedKey(ctx, userID, credentialID)
	c.record(ctx, "credential_bind_key", start, err)
	return err
}

// RestoreCachedKey records metrics for cache key restoration.
func (c *credentialUseCaseWithMetrics) RestoreCachedKey(
	ctx context.Context,
	userID uuid.UUID,
	credentialID string,
	ttl time.Duration,
) error {
	start := time.Now()
	err := c.next.RestoreCachedKey(ctx, userID, credentialID, ttl)
	c.record(ctx, "credential_restore_key", start, err)
	return err
}

// GenerateChallenge records metrics for challenge issuance.
func (c *credentialUseCaseWithMetrics) GenerateChallenge(ctx context.Context, credentialID string) ([]byte, error) {
	start := time.Now()
	challenge, err := c.next.GenerateChallenge(ctx, credentialID)
	c.record(ctx, "credential_challenge", start, err)
	return challenge, err
}

// VerifyAssertion records metrics for assertion verification.
func (c *credentialUseCaseWithMetrics) VerifyAssertion(ctx context.Context, credentialID string, assertion []byte) error {
	start := time.Now()
	err := c.next.VerifyAssertion(ctx, credentialID, assertion)
	c.record(ctx, "credential_verify", start, err)
	return err
}
