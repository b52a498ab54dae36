// Package domain defines core domain models and errors for safes.
package domain

import (
	"github.com/allisson/photosafe/internal/errors"
)

// Safe-specific error definitions.
//
// Ownership and lock-state failures both wrap ErrForbidden so that the HTTP
// layer renders them identically: callers must not be able to tell "not
// yours" from "locked" from the response shape.
var (
	// ErrSafeNotFound indicates the safe does not exist.
	ErrSafeNotFound = errors.Wrap(errors.ErrNotFound, "safe not found")

	// ErrSessionNotFound indicates no session row matched.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrNotSafeOwner indicates the requester does not own the safe.
	ErrNotSafeOwner = errors.Wrap(errors.ErrForbidden, "requester is not the safe owner")

	// ErrSafeLocked indicates the safe has no live unlock session for the requester.
	ErrSafeLocked = errors.Wrap(errors.ErrForbidden, "safe is locked")
)
