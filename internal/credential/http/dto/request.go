// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/photosafe/internal/validation"
)

// CompleteRegistrationRequest contains the base64-encoded attestation
// produced by the authenticator for a registration challenge.
type CompleteRegistrationRequest struct {
	Attestation string `json:"attestation"`
}

// Validate checks if the complete registration request is valid.
func (r *CompleteRegistrationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Attestation,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// VerifyAssertionRequest contains the base64-encoded signed challenge
// produced by the authenticator.
type VerifyAssertionRequest struct {
	Assertion string `json:"assertion"`
}

// Validate checks if the verify assertion request is valid.
func (r *VerifyAssertionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Assertion,
			validation.Required,
			customValidation.Base64,
		),
	)
}
