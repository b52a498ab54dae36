package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// mockSafeRepository is a mock implementation of SafeRepository for testing.
type mockSafeRepository struct {
	mock.Mock
}

func (m *mockSafeRepository) Create(ctx context.Context, safe *safeDomain.Safe) error {
	args := m.Called(ctx, safe)
	return args.Error(0)
}

func (m *mockSafeRepository) Get(ctx context.Context, safeID uuid.UUID) (*safeDomain.Safe, error) {
	args := m.Called(ctx, safeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*safeDomain.Safe), args.Error(1)
}

func (m *mockSafeRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*safeDomain.Safe, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*safeDomain.Safe), args.Error(1)
}

func (m *mockSafeRepository) UpdateName(ctx context.Context, safeID uuid.UUID, name string) error {
	args := m.Called(ctx, safeID, name)
	return args.Error(0)
}

func (m *mockSafeRepository) Delete(ctx context.Context, safeID uuid.UUID) error {
	args := m.Called(ctx, safeID)
	return args.Error(0)
}

// mockSessionRepository is a mock implementation of SessionRepository for testing.
type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session *safeDomain.SafeSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) GetActive(
	ctx context.Context,
	safeID, userID uuid.UUID,
	now time.Time,
) (*safeDomain.SafeSession, error) {
	args := m.Called(ctx, safeID, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*safeDomain.SafeSession), args.Error(1)
}

func (m *mockSessionRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
	now time.Time,
) (*safeDomain.SafeSession, error) {
	args := m.Called(ctx, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*safeDomain.SafeSession), args.Error(1)
}

func (m *mockSessionRepository) DeleteBySafeAndUser(ctx context.Context, safeID, userID uuid.UUID) error {
	args := m.Called(ctx, safeID, userID)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteBySafe(ctx context.Context, safeID uuid.UUID) error {
	args := m.Called(ctx, safeID)
	return args.Error(0)
}

func (m *mockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// mockItemPurger is a mock implementation of ItemPurger for testing.
type mockItemPurger struct {
	mock.Mock
}

func (m *mockItemPurger) DeleteBySafe(ctx context.Context, safeID uuid.UUID) error {
	args := m.Called(ctx, safeID)
	return args.Error(0)
}

// mockTokenService is a mock implementation of service.TokenService for testing.
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockTokenService) HashToken(plainToken string) string {
	args := m.Called(plainToken)
	return args.String(0)
}

// mockChallenger is a mock implementation of HardwareChallenger for testing.
type mockChallenger struct {
	mock.Mock
}

func (m *mockChallenger) GenerateChallenge(ctx context.Context, credentialID string) ([]byte, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockChallenger) VerifyAssertion(ctx context.Context, credentialID string, assertion []byte) error {
	args := m.Called(ctx, credentialID, assertion)
	return args.Error(0)
}

// mockEscrowService is a mock implementation of service.RecoveryEscrowService for testing.
type mockEscrowService struct {
	mock.Mock
}

func (m *mockEscrowService) Wrap(ctx context.Context, recoveryEncryptedDEK []byte) ([]byte, error) {
	args := m.Called(ctx, recoveryEncryptedDEK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockEscrowService) Unwrap(ctx context.Context, escrowWrapped []byte) ([]byte, error) {
	args := m.Called(ctx, escrowWrapped)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockEscrowService) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}
