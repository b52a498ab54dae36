package domain

import (
	"github.com/allisson/photosafe/internal/errors"
)

// Credential-specific error definitions.
var (
	// ErrCredentialNotFound indicates the credential does not exist or does
	// not belong to the requester. Both cases share one error so responses do
	// not reveal whether a credential id is registered.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrCredentialExists indicates the credential id is already registered.
	ErrCredentialExists = errors.Wrap(errors.ErrConflict, "credential already registered")

	// ErrAssertionInvalid indicates a signed challenge failed verification.
	ErrAssertionInvalid = errors.Wrap(errors.ErrForbidden, "assertion did not verify")
)
