package domain

import (
	"github.com/google/uuid"
)

// CreateSafeInput carries the data needed to create a safe. Method must be a
// constructed union member so per-type invariants hold before the use case runs.
type CreateSafeInput struct {
	OwnerID              uuid.UUID
	Name                 string
	Method               UnlockMethod
	RecoveryEncryptedDEK []byte
}

// CompleteUnlockInput carries the data needed to finish an unlock handshake.
type CompleteUnlockInput struct {
	SafeID uuid.UUID
	UserID uuid.UUID
	// SessionEncryptedDEK is the DEK re-wrapped client-side under a session key.
	SessionEncryptedDEK []byte
	// ExpiresHours is the requested session lifetime. Nil means "use the
	// configured default". An explicit zero is allowed and produces a session
	// that is already expired, i.e. the safe stays locked.
	ExpiresHours *int
	// HardwareAssertion is the signed challenge; required for hardware safes.
	HardwareAssertion []byte
}

// CompleteUnlockOutput returns the created session and the plain session
// token. The plain token is never stored and never shown again.
type CompleteUnlockOutput struct {
	Session    *SafeSession
	PlainToken string
}
