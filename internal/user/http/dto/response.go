// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	userDomain "github.com/allisson/photosafe/internal/user/domain"
)

// UserResponse represents a user account in API responses. Key material is
// never echoed back; clients that need their wrapped DEK use the encryption
// setup response.
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	EncryptionVersion  int       `json:"encryption_version"`
	HasEncryptionSetup bool      `json:"has_encryption_setup"`
	CreatedAt          time.Time `json:"created_at"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Name:               user.Name,
		Email:              user.Email,
		EncryptionVersion:  user.EncryptionVersion,
		HasEncryptionSetup: user.HasEncryptionSetup(),
		CreatedAt:          user.CreatedAt,
	}
}

// IssueTokenResponse contains the result of issuing a bearer token.
// SECURITY: The token is only returned once and must be saved securely.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
