package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/photosafe/internal/errors"
	"github.com/allisson/photosafe/internal/keycache"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
	safeService "github.com/allisson/photosafe/internal/safe/service"
)

// sessionUseCase implements SessionUseCase for unlock session management.
type sessionUseCase struct {
	safeRepo     SafeRepository
	sessionRepo  SessionRepository
	tokenService safeService.TokenService
	challenger   HardwareChallenger
	keyCache     *keycache.Cache

	defaultExpiration time.Duration
	maxExpiration     time.Duration

	// now is injectable for tests.
	now func() time.Time
}

// CompleteUnlock finishes the unlock handshake: ownership is enforced, the
// hardware assertion is verified when required, and a session row is created
// with a hashed token. The plain token is returned exactly once.
//
// ExpiresHours zero is honored literally: the session is created already
// expired, so every subsequent read sees the safe as locked.
func (s *sessionUseCase) CompleteUnlock(
	ctx context.Context,
	input *safeDomain.CompleteUnlockInput,
) (*safeDomain.CompleteUnlockOutput, error) {
	if input.ExpiresHours != nil && *input.ExpiresHours < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "expires_hours must not be negative")
	}
	if len(input.SessionEncryptedDEK) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session_encrypted_dek is required")
	}

	safe, err := s.safeRepo.Get(ctx, input.SafeID)
	if err != nil {
		return nil, err
	}
	if !safe.IsOwner(input.UserID) {
		return nil, safeDomain.ErrNotSafeOwner
	}

	if safe.UnlockType == safeDomain.UnlockTypeHardware {
		if len(input.HardwareAssertion) == 0 {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "hardware assertion is required")
		}
		if err := s.challenger.VerifyAssertion(ctx, safe.CredentialID, input.HardwareAssertion); err != nil {
			return nil, err
		}
	}

	lifetime := s.defaultExpiration
	if input.ExpiresHours != nil {
		lifetime = time.Duration(*input.ExpiresHours) * time.Hour
	}
	if lifetime > s.maxExpiration {
		lifetime = s.maxExpiration
	}

	plainToken, tokenHash, err := s.tokenService.GenerateToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	session := &safeDomain.SafeSession{
		ID:                  uuid.Must(uuid.NewV7()),
		SafeID:              input.SafeID,
		UserID:              input.UserID,
		TokenHash:           tokenHash,
		SessionEncryptedDEK: input.SessionEncryptedDEK,
		CreatedAt:           now,
		ExpiresAt:           now.Add(lifetime),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &safeDomain.CompleteUnlockOutput{
		Session:    session,
		PlainToken: plainToken,
	}, nil
}

// IsUnlocked reports whether the user holds a live session on the safe.
// A missing session means locked, not an error; storage failures propagate.
func (s *sessionUseCase) IsUnlocked(ctx context.Context, safeID, userID uuid.UUID) (bool, error) {
	_, err := s.sessionRepo.GetActive(ctx, safeID, userID, s.now())
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetActiveSession retrieves the user's live session on the safe.
func (s *sessionUseCase) GetActiveSession(
	ctx context.Context,
	safeID, userID uuid.UUID,
) (*safeDomain.SafeSession, error) {
	return s.sessionRepo.GetActive(ctx, safeID, userID, s.now())
}

// Lock deletes the user's sessions on the safe and clears the user's cached
// key material. Idempotent: locking an already-locked safe deletes zero rows
// and succeeds.
func (s *sessionUseCase) Lock(ctx context.Context, safeID, userID uuid.UUID) error {
	if err := s.sessionRepo.DeleteBySafeAndUser(ctx, safeID, userID); err != nil {
		return err
	}
	s.keyCache.Clear(userID)
	return nil
}

// LockAll removes every session on the safe, a full-safe lockdown. Owner-only.
// Other users' key caches are left alone; caches expire on their own TTL and
// lock state is always answered from session rows, never the cache.
func (s *sessionUseCase) LockAll(ctx context.Context, safeID, requesterID uuid.UUID) error {
	safe, err := s.safeRepo.Get(ctx, safeID)
	if err != nil {
		return err
	}
	if !safe.IsOwner(requesterID) {
		return safeDomain.ErrNotSafeOwner
	}

	if err := s.sessionRepo.DeleteBySafe(ctx, safeID); err != nil {
		return err
	}
	s.keyCache.Clear(requesterID)
	return nil
}

// SweepExpired deletes expired session rows and returns the count removed.
func (s *sessionUseCase) SweepExpired(ctx context.Context) (int64, error) {
	return s.sessionRepo.DeleteExpired(ctx, s.now())
}

// NewSessionUseCase creates a new SessionUseCase with the provided dependencies.
func NewSessionUseCase(
	safeRepo SafeRepository,
	sessionRepo SessionRepository,
	tokenService safeService.TokenService,
	challenger HardwareChallenger,
	keyCache *keycache.Cache,
	defaultExpiration time.Duration,
	maxExpiration time.Duration,
) SessionUseCase {
	return &sessionUseCase{
		safeRepo:          safeRepo,
		sessionRepo:       sessionRepo,
		tokenService:      tokenService,
		challenger:        challenger,
		keyCache:          keyCache,
		defaultExpiration: defaultExpiration,
		maxExpiration:     maxExpiration,
		now:               func() time.Time { return time.Now().UTC() },
	}
}
