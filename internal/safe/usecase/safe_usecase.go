// Package usecase implements business logic orchestration for safes.
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/database"
	apperrors "github.com/allisson/photosafe/internal/errors"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
	safeService "github.com/allisson/photosafe/internal/safe/service"
)

// safeUseCase implements SafeUseCase for managing the safe lifecycle.
type safeUseCase struct {
	txManager   database.TxManager
	safeRepo    SafeRepository
	sessionRepo SessionRepository
	items       ItemPurger
	escrow      safeService.RecoveryEscrowService
	challenger  HardwareChallenger
}

// Create persists a new safe built from a validated unlock method.
// When a recovery wrap is supplied and escrow is configured, the recovery
// ciphertext is additionally wrapped under the org KMS key before storage.
func (s *safeUseCase) Create(
	ctx context.Context,
	input *safeDomain.CreateSafeInput,
) (*safeDomain.Safe, error) {
	safe, err := safeDomain.NewSafe(input.OwnerID, input.Name, input.Method, input.RecoveryEncryptedDEK)
	if err != nil {
		return nil, err
	}

	if len(safe.RecoveryEncryptedDEK) > 0 && s.escrow.Enabled() {
		wrapped, err := s.escrow.Wrap(ctx, safe.RecoveryEncryptedDEK)
		if err != nil {
			return nil, err
		}
		safe.EscrowWrappedRecoveryDEK = wrapped
	}

	if err := s.safeRepo.Create(ctx, safe); err != nil {
		return nil, err
	}

	return safe, nil
}

// Get retrieves a safe by ID. Non-owners get ErrNotSafeOwner.
func (s *safeUseCase) Get(ctx context.Context, safeID, requesterID uuid.UUID) (*safeDomain.Safe, error) {
	safe, err := s.ownedSafe(ctx, safeID, requesterID)
	if err != nil {
		return nil, err
	}
	return safe, nil
}

// List retrieves the requester's safes, newest first.
func (s *safeUseCase) List(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*safeDomain.Safe, error) {
	return s.safeRepo.ListByOwner(ctx, ownerID, limit, offset)
}

// Rename changes the safe name. Owner-only.
func (s *safeUseCase) Rename(ctx context.Context, safeID, requesterID uuid.UUID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "name must not be blank")
	}

	if _, err := s.ownedSafe(ctx, safeID, requesterID); err != nil {
		return err
	}

	return s.safeRepo.UpdateName(ctx, safeID, name)
}

// Delete removes the safe, its sessions, and the items it contains in one
// transaction. Owner-only. Deleting the contained items takes their key and
// share rows with them, so vaulted ciphertext never survives its safe and
// reappears outside the unlock gate.
func (s *safeUseCase) Delete(ctx context.Context, safeID, requesterID uuid.UUID) error {
	if _, err := s.ownedSafe(ctx, safeID, requesterID); err != nil {
		return err
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.DeleteBySafe(ctx, safeID); err != nil {
			return err
		}
		if err := s.items.DeleteBySafe(ctx, safeID); err != nil {
			return err
		}
		return s.safeRepo.Delete(ctx, safeID)
	})
}

// GetUnlockChallenge returns the unlock material for the safe. Owner-only.
// For password safes that is {encrypted_dek, salt}; for hardware safes a
// one-time signing challenge is issued via the credential module.
func (s *safeUseCase) GetUnlockChallenge(
	ctx context.Context,
	safeID, requesterID uuid.UUID,
) (*safeDomain.UnlockChallenge, error) {
	safe, err := s.ownedSafe(ctx, safeID, requesterID)
	if err != nil {
		return nil, err
	}

	method, err := safe.Method()
	if err != nil {
		return nil, err
	}

	switch m := method.(type) {
	case safeDomain.PasswordUnlock:
		return &safeDomain.UnlockChallenge{
			Type:         safeDomain.UnlockTypePassword,
			EncryptedDEK: m.EncryptedDEK,
			Salt:         m.Salt,
		}, nil
	case safeDomain.HardwareUnlock:
		challenge, err := s.challenger.GenerateChallenge(ctx, m.CredentialID)
		if err != nil {
			return nil, err
		}
		return &safeDomain.UnlockChallenge{
			Type:         safeDomain.UnlockTypeHardware,
			EncryptedDEK: m.EncryptedDEK,
			Challenge:    challenge,
			CredentialID: m.CredentialID,
		}, nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown unlock type")
	}
}

// ownedSafe loads the safe and enforces ownership.
func (s *safeUseCase) ownedSafe(ctx context.Context, safeID, requesterID uuid.UUID) (*safeDomain.Safe, error) {
	safe, err := s.safeRepo.Get(ctx, safeID)
	if err != nil {
		return nil, err
	}
	if !safe.IsOwner(requesterID) {
		return nil, safeDomain.ErrNotSafeOwner
	}
	return safe, nil
}

// NewSafeUseCase creates a new SafeUseCase with the provided dependencies.
func NewSafeUseCase(
	txManager database.TxManager,
	safeRepo SafeRepository,
	sessionRepo SessionRepository,
	items ItemPurger,
	escrow safeService.RecoveryEscrowService,
	challenger HardwareChallenger,
) SafeUseCase {
	return &safeUseCase{
		txManager:   txManager,
		safeRepo:    safeRepo,
		sessionRepo: sessionRepo,
		items:       items,
		escrow:      escrow,
		challenger:  challenger,
	}
}
