package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/metrics"
	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "users", operation, status)
	u.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}

// Create records metrics for user creation.
func (u *userUseCaseWithMetrics) Create(ctx context.Context, name, email string) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, name, email)
	u.record(ctx, "user_create", start, err)
	return user, err
}

// Get records metrics for user retrieval.
func (u *userUseCaseWithMetrics) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, userID)
	u.record(ctx, "user_get", start, err)
	return user, err
}

// SetupEncryption records metrics for encryption setup.
func (u *userUseCaseWithMetrics) SetupEncryption(
	ctx context.Context,
	userID uuid.UUID,
	publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK []byte,
) (*userDomain.User, error) {
	start := time.Now()
	user, err := u.next.SetupEncryption(ctx, userID, publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK)
	u.record(ctx, "user_setup_encryption", start, err)
	return user, err
}

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordOperation(ctx, "users", operation, status)
	a.metrics.RecordDuration(ctx, "users", operation, time.Since(start), status)
}

// IssueToken records metrics for token issuance.
func (a *authUseCaseWithMetrics) IssueToken(
	ctx context.Context,
	userID uuid.UUID,
) (*userDomain.IssueTokenOutput, error) {
	start := time.Now()
	output, err := a.next.IssueToken(ctx, userID)
	a.record(ctx, "token_issue", start, err)
	return output, err
}

// Authenticate records metrics for token authentication.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.Authenticate(ctx, plainToken)
	a.record(ctx, "token_authenticate", start, err)
	return user, err
}

// RevokeToken records metrics for token revocation.
func (a *authUseCaseWithMetrics) RevokeToken(ctx context.Context, plainToken string) error {
	start := time.Now()
	err := a.next.RevokeToken(ctx, plainToken)
	a.record(ctx, "token_revoke", start, err)
	return err
}

// SweepExpiredTokens records metrics for expired token sweeps.
func (a *authUseCaseWithMetrics) SweepExpiredTokens(ctx context.Context) (int64, error) {
	start := time.Now()
	removed, err := a.next.SweepExpiredTokens(ctx)
	a.record(ctx, "token_sweep_expired", start, err)
	return removed, err
}
