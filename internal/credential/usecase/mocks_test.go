package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
)

// mockCredentialRepository is a mock implementation of CredentialRepository for testing.
type mockCredentialRepository struct {
	mock.Mock
}

func (m *mockCredentialRepository) Create(ctx context.Context, cred *credentialDomain.Credential) error {
	args := m.Called(ctx, cred)
	return args.Error(0)
}

func (m *mockCredentialRepository) GetByCredentialID(
	ctx context.Context,
	credentialID string,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

func (m *mockCredentialRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}

func (m *mockCredentialRepository) Delete(ctx context.Context, userID uuid.UUID, credentialID string) error {
	args := m.Called(ctx, userID, credentialID)
	return args.Error(0)
}

func (m *mockCredentialRepository) UpdateCacheWrap(
	ctx context.Context,
	credentialID string,
	wrappedCacheKey, wrapNonce []byte,
) error {
	args := m.Called(ctx, credentialID, wrappedCacheKey, wrapNonce)
	return args.Error(0)
}

func (m *mockCredentialRepository) UpdateSignCount(ctx context.Context, credentialID string, signCount uint32) error {
	args := m.Called(ctx, credentialID, signCount)
	return args.Error(0)
}

// mockCredentialVerifier is a mock implementation of CredentialVerifier for testing.
type mockCredentialVerifier struct {
	mock.Mock
}

func (m *mockCredentialVerifier) GenerateRegistrationChallenge(
	ctx context.Context,
	userID uuid.UUID,
) ([]byte, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCredentialVerifier) VerifyRegistration(
	ctx context.Context,
	userID uuid.UUID,
	attestation []byte,
) (*credentialDomain.VerifiedRegistration, error) {
	args := m.Called(ctx, userID, attestation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.VerifiedRegistration), args.Error(1)
}

func (m *mockCredentialVerifier) GenerateAuthenticationChallenge(
	ctx context.Context,
	credentialID string,
) ([]byte, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockCredentialVerifier) VerifyAuthentication(
	ctx context.Context,
	credentialID string,
	assertion []byte,
) (uint32, error) {
	args := m.Called(ctx, credentialID, assertion)
	return args.Get(0).(uint32), args.Error(1)
}
