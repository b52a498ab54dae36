package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/metrics"
	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// safeUseCaseWithMetrics decorates SafeUseCase with metrics instrumentation.
type safeUseCaseWithMetrics struct {
	next    SafeUseCase
	metrics metrics.BusinessMetrics
}

// NewSafeUseCaseWithMetrics wraps a SafeUseCase with metrics recording.
func NewSafeUseCaseWithMetrics(useCase SafeUseCase, m metrics.BusinessMetrics) SafeUseCase {
	return &safeUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *safeUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "safes", operation, status)
	s.metrics.RecordDuration(ctx, "safes", operation, time.Since(start), status)
}

// Create records metrics for safe creation operations.
func (s *safeUseCaseWithMetrics) Create(
	ctx context.Context,
	input *safeDomain.CreateSafeInput,
) (*safeDomain.Safe, error) {
	start := time.Now()
	safe, err := s.next.Create(ctx, input)
	s.record(ctx, "safe_create", start, err)
	return safe, err
}

// Get records metrics for safe retrieval operations.
func (s *safeUseCaseWithMetrics) Get(ctx context.Context, safeID, requesterID uuid.UUID) (*safeDomain.Safe, error) {
	start := time.Now()
	safe, err := s.next.Get(ctx, safeID, requesterID)
	s.record(ctx, "safe_get", start, err)
	return safe, err
}

// List records metrics for safe list operations.
func (s *safeUseCaseWithMetrics) List(
	ctx context.Context,
	ownerID uuid.UUID,
	limit, offset int,
) ([]*safeDomain.Safe, error) {
	start := time.Now()
	safes, err := s.next.List(ctx, ownerID, limit, offset)
	s.record(ctx, "safe_list", start, err)
	return safes, err
}

// Rename records metrics for safe rename operations.
func (s *safeUseCaseWithMetrics) Rename(ctx context.Context, safeID, requesterID uuid.UUID, name string) error {
	start := time.Now()
	err := s.next.Rename(ctx, safeID, requesterID, name)
	s.record(ctx, "safe_rename", start, err)
	return err
}

// Delete records metrics for safe delete operations.
func (s *safeUseCaseWithMetrics) Delete(ctx context.Context, safeID, requesterID uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, safeID, requesterID)
	s.record(ctx, "safe_delete", start, err)
	return err
}

// GetUnlockChallenge records metrics for unlock challenge operations.
func (s *safeUseCaseWithMetrics) GetUnlockChallenge(
	ctx context.Context,
	safeID, requesterID uuid.UUID,
) (*safeDomain.UnlockChallenge, error) {
	start := time.Now()
	challenge, err := s.next.GetUnlockChallenge(ctx, safeID, requesterID)
	s.record(ctx, "safe_unlock_challenge", start, err)
	return challenge, err
}

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "safes", operation, status)
	s.metrics.RecordDuration(ctx, "safes", operation, time.Since(start), status)
}

// CompleteUnlock records metrics for unlock operations.
func (s *sessionUseCaseWithMetrics) CompleteUnlock(
	ctx context.Context,
	input *safeDomain.CompleteUnlockInput,
) (*safeDomain.CompleteUnlockOutput, error) {
	start := time.Now()
	output, err := s.next.CompleteUnlock(ctx, input)
	s.record(ctx, "session_unlock", start, err)
	return output, err
}

// IsUnlocked records metrics for lock-state checks.
func (s *sessionUseCaseWithMetrics) IsUnlocked(ctx context.Context, safeID, userID uuid.UUID) (bool, error) {
	start := time.Now()
	unlocked, err := s.next.IsUnlocked(ctx, safeID, userID)
	s.record(ctx, "session_is_unlocked", start, err)
	return unlocked, err
}

// GetActiveSession records metrics for session retrieval operations.
func (s *sessionUseCaseWithMetrics) GetActiveSession(
	ctx context.Context,
	safeID, userID uuid.UUID,
) (*safeDomain.SafeSession, error) {
	start := time.Now()
	session, err := s.next.GetActiveSession(ctx, safeID, userID)
	s.record(ctx, "session_get_active", start, err)
	return session, err
}

// Lock records metrics for lock operations.
func (s *sessionUseCaseWithMetrics) Lock(ctx context.Context, safeID, userID uuid.UUID) error {
	start := time.Now()
	err := s.next.Lock(ctx, safeID, userID)
	s.record(ctx, "session_lock", start, err)
	return err
}

// LockAll records metrics for full-safe lockdown operations.
func (s *sessionUseCaseWithMetrics) LockAll(ctx context.Context, safeID, requesterID uuid.UUID) error {
	start := time.Now()
	err := s.next.LockAll(ctx, safeID, requesterID)
	s.record(ctx, "session_lock_all", start, err)
	return err
}

// SweepExpired records metrics for expired session sweeps.
func (s *sessionUseCaseWithMetrics) SweepExpired(ctx context.Context) (int64, error) {
	start := time.Now()
	removed, err := s.next.SweepExpired(ctx)
	s.record(ctx, "session_sweep_expired", start, err)
	return removed, err
}
