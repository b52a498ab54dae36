// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

// Minimum sizes for opaque key material accepted at the boundary. The server
// never inspects ciphertext beyond these sanity checks.
const (
	// MinCiphertextBytes is the smallest acceptable wrapped-key ciphertext.
	MinCiphertextBytes = 16
	// MinSaltBytes is the smallest acceptable KDF salt.
	MinSaltBytes = 8
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Ciphertext validates that a byte slice is plausibly wrapped key material.
var Ciphertext = validation.By(func(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return validation.NewError("validation_ciphertext_type", "must be a byte slice")
	}
	if len(b) == 0 {
		return nil // Let Required handle empty values
	}
	if len(b) < MinCiphertextBytes {
		return validation.NewError("validation_ciphertext_length", "ciphertext is too short")
	}
	return nil
})

// Salt validates that a byte slice is a plausible KDF salt.
var Salt = validation.By(func(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return validation.NewError("validation_salt_type", "must be a byte slice")
	}
	if len(b) == 0 {
		return nil // Let Required handle empty values
	}
	if len(b) < MinSaltBytes {
		return validation.NewError("validation_salt_length", "salt is too short")
	}
	return nil
})
