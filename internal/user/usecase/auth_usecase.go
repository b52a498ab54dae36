package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// authUseCase implements AuthUseCase.
type authUseCase struct {
	userRepo     UserRepository
	tokenRepo    TokenRepository
	tokenService TokenService

	tokenExpiration time.Duration
	now             func() time.Time
}

// IssueToken creates a bearer token for the user.
func (a *authUseCase) IssueToken(ctx context.Context, userID uuid.UUID) (*userDomain.IssueTokenOutput, error) {
	if _, err := a.userRepo.Get(ctx, userID); err != nil {
		return nil, err
	}

	plainToken, tokenHash, err := a.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := a.now().UTC()
	token := &userDomain.UserToken{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: now.Add(a.tokenExpiration),
		CreatedAt: now,
	}

	if err := a.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}

	return &userDomain.IssueTokenOutput{PlainToken: plainToken, ExpiresAt: token.ExpiresAt}, nil
}

// Authenticate resolves a plain bearer token to its user. Unknown and expired
// tokens both report ErrInvalidCredentials so callers cannot probe token state.
func (a *authUseCase) Authenticate(ctx context.Context, plainToken string) (*userDomain.User, error) {
	token, err := a.tokenRepo.GetByTokenHash(ctx, a.tokenService.HashToken(plainToken))
	if err != nil {
		if apperrors.Is(err, userDomain.ErrTokenNotFound) {
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !token.ExpiresAt.After(a.now().UTC()) {
		return nil, userDomain.ErrInvalidCredentials
	}

	user, err := a.userRepo.Get(ctx, token.UserID)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, userDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

// RevokeToken removes the token row.
func (a *authUseCase) RevokeToken(ctx context.Context, plainToken string) error {
	err := a.tokenRepo.DeleteByTokenHash(ctx, a.tokenService.HashToken(plainToken))
	if err != nil {
		if apperrors.Is(err, userDomain.ErrTokenNotFound) {
			return userDomain.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

// SweepExpiredTokens deletes expired token rows.
func (a *authUseCase) SweepExpiredTokens(ctx context.Context) (int64, error) {
	return a.tokenRepo.DeleteExpired(ctx, a.now().UTC())
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	tokenService TokenService,
	tokenExpiration time.Duration,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		tokenService:    tokenService,
		tokenExpiration: tokenExpiration,
		now:             time.Now,
	}
}
