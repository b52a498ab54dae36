package service

import (
	"context"
	"sync"

	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// recoveryEscrowService implements RecoveryEscrowService on top of a
// gocloud.dev KMS keeper. The keeper is opened lazily so deployments without
// escrow never touch the KMS provider.
type recoveryEscrowService struct {
	kms    cryptoService.KMSService
	keyURI string

	mu     sync.Mutex
	keeper cryptoService.KMSKeeper
}

// NewRecoveryEscrowService creates a RecoveryEscrowService for the given KMS
// key URI. An empty keyURI disables escrow.
func NewRecoveryEscrowService(kms cryptoService.KMSService, keyURI string) RecoveryEscrowService {
	return &recoveryEscrowService{kms: kms, keyURI: keyURI}
}

// Enabled reports whether a KMS escrow key is configured.
func (r *recoveryEscrowService) Enabled() bool {
	return r.keyURI != ""
}

// Wrap encrypts a recovery ciphertext under the escrow KMS key.
func (r *recoveryEscrowService) Wrap(ctx context.Context, recoveryEncryptedDEK []byte) ([]byte, error) {
	keeper, err := r.getKeeper(ctx)
	if err != nil {
		return nil, err
	}

	wrapped, err := keeper.Encrypt(ctx, recoveryEncryptedDEK)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to escrow-wrap recovery key")
	}
	return wrapped, nil
}

// Unwrap reverses Wrap, returning the recovery ciphertext.
func (r *recoveryEscrowService) Unwrap(ctx context.Context, escrowWrapped []byte) ([]byte, error) {
	keeper, err := r.getKeeper(ctx)
	if err != nil {
		return nil, err
	}

	unwrapped, err := keeper.Decrypt(ctx, escrowWrapped)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unwrap escrowed recovery key")
	}
	return unwrapped, nil
}

func (r *recoveryEscrowService) getKeeper(ctx context.Context) (cryptoService.KMSKeeper, error) {
	if !r.Enabled() {
		return nil, apperrors.New("recovery escrow is not configured")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.keeper != nil {
		return r.keeper, nil
	}

	keeper, err := r.kms.OpenKeeper(ctx, r.keyURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open escrow keeper")
	}
	r.keeper = keeper

	return keeper, nil
}
