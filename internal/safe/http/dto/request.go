// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
	customValidation "github.com/allisson/photosafe/internal/validation"
)

// CreateSafeRequest contains the parameters for creating a safe. The key
// material fields are base64-encoded ciphertext; which ones are required
// depends on the unlock type and is enforced by the unlock method
// constructors.
type CreateSafeRequest struct {
	Name                 string `json:"name"`
	UnlockType           string `json:"unlock_type"`
	EncryptedDEK         string `json:"encrypted_dek"`
	Salt                 string `json:"salt,omitempty"`
	CredentialID         string `json:"credential_id,omitempty"`
	RecoveryEncryptedDEK string `json:"recovery_encrypted_dek,omitempty"`
}

// Validate checks if the create safe request is valid.
func (r *CreateSafeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.UnlockType,
			validation.Required,
			validation.In(
				string(safeDomain.UnlockTypePassword),
				string(safeDomain.UnlockTypeHardware),
			),
		),
		validation.Field(&r.EncryptedDEK,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.Salt,
			customValidation.Base64,
		),
		validation.Field(&r.RecoveryEncryptedDEK,
			customValidation.Base64,
		),
	)
}

// RenameSafeRequest contains the parameters for renaming a safe.
type RenameSafeRequest struct {
	Name string `json:"name"`
}

// Validate checks if the rename safe request is valid.
func (r *RenameSafeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// CompleteUnlockRequest contains the parameters for finishing an unlock
// handshake. ExpiresHours is optional; nil means the configured default, an
// explicit zero yields a session that is already expired.
type CompleteUnlockRequest struct {
	SessionEncryptedDEK string `json:"session_encrypted_dek"`
	ExpiresHours        *int   `json:"expires_hours,omitempty"`
	HardwareAssertion   string `json:"hardware_assertion,omitempty"`
}

// Validate checks if the complete unlock request is valid.
func (r *CompleteUnlockRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionEncryptedDEK,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.ExpiresHours,
			validation.Min(0),
		),
		validation.Field(&r.HardwareAssertion,
			customValidation.Base64,
		),
	)
}
