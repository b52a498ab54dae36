// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/photosafe/internal/validation"
)

// CreateUserRequest contains the parameters for registering a new user account.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(3, 255),
		),
	)
}

// SetupEncryptionRequest contains the client-generated key material that moves
// an account to the envelope encryption scheme. All blobs are base64-encoded
// ciphertext; the server never inspects them beyond decoding.
type SetupEncryptionRequest struct {
	PublicKey            string `json:"public_key"`
	EncryptedDEK         string `json:"encrypted_dek"`
	DEKSalt              string `json:"dek_salt"`
	RecoveryEncryptedDEK string `json:"recovery_encrypted_dek,omitempty"`
}

// Validate checks if the encryption setup request is valid.
func (r *SetupEncryptionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PublicKey,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.EncryptedDEK,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.DEKSalt,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.RecoveryEncryptedDEK,
			customValidation.Base64,
		),
	)
}

// IssueTokenRequest contains the parameters for issuing a bearer API token.
type IssueTokenRequest struct {
	UserID string `json:"user_id"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
