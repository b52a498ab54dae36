// Package usecase implements business logic orchestration for users and authentication.
package usecase

import (
	"context"

	"github.com/google/uuid"

	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// userUseCase implements UserUseCase.
type userUseCase struct {
	repo UserRepository
}

// Create registers a new user account.
func (u *userUseCase) Create(ctx context.Context, name, email string) (*userDomain.User, error) {
	user, err := userDomain.NewUser(name, email)
	if err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func (u *userUseCase) Get(ctx context.Context, userID uuid.UUID) (*userDomain.User, error) {
	return u.repo.Get(ctx, userID)
}

// SetupEncryption attaches client-generated key material to the account.
func (u *userUseCase) SetupEncryption(
	ctx context.Context,
	userID uuid.UUID,
	publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK []byte,
) (*userDomain.User, error) {
	user, err := u.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := user.SetupEncryption(publicKey, encryptedDEK, dekSalt, recoveryEncryptedDEK); err != nil {
		return nil, err
	}

	if err := u.repo.UpdateEncryptionKeys(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(repo UserRepository) UserUseCase {
	return &userUseCase{repo: repo}
}
