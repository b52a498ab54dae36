// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/base64"
	"time"

	safeDomain "github.com/allisson/photosafe/internal/safe/domain"
)

// SafeResponse represents a safe in API responses. DEK ciphertext is not
// included; clients obtain it through the unlock challenge.
type SafeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	UnlockType  string    `json:"unlock_type"`
	HasRecovery bool      `json:"has_recovery"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapSafeToResponse converts a domain safe to an API response.
func MapSafeToResponse(safe *safeDomain.Safe) SafeResponse {
	return SafeResponse{
		ID:          safe.ID.String(),
		Name:        safe.Name,
		UnlockType:  string(safe.UnlockType),
		HasRecovery: len(safe.RecoveryEncryptedDEK) > 0,
		CreatedAt:   safe.CreatedAt,
	}
}

// ListSafesResponse represents a paginated list of safes in API responses.
type ListSafesResponse struct {
	Data []SafeResponse `json:"data"`
}

// MapSafesToListResponse converts a slice of domain safes to a list API response.
func MapSafesToListResponse(safes []*safeDomain.Safe) ListSafesResponse {
	safeResponses := make([]SafeResponse, 0, len(safes))
	for _, safe := range safes {
		safeResponses = append(safeResponses, MapSafeToResponse(safe))
	}
	return ListSafesResponse{
		Data: safeResponses,
	}
}

// UnlockChallengeResponse contains the material a client needs to unlock a
// safe: ciphertext and salt for password safes, a signing challenge for
// hardware safes. All blobs are base64-encoded.
type UnlockChallengeResponse struct {
	Type         string `json:"type"`
	EncryptedDEK string `json:"encrypted_dek,omitempty"`
	Salt         string `json:"salt,omitempty"`
	Challenge    string `json:"challenge,omitempty"`
	CredentialID string `json:"credential_id,omitempty"`
}

// MapUnlockChallengeToResponse converts a domain unlock challenge to an API response.
func MapUnlockChallengeToResponse(challenge *safeDomain.UnlockChallenge) UnlockChallengeResponse {
	response := UnlockChallengeResponse{
		Type:         string(challenge.Type),
		CredentialID: challenge.CredentialID,
	}
	if len(challenge.EncryptedDEK) > 0 {
		response.EncryptedDEK = base64.StdEncoding.EncodeToString(challenge.EncryptedDEK)
	}
	if len(challenge.Salt) > 0 {
		response.Salt = base64.StdEncoding.EncodeToString(challenge.Salt)
	}
	if len(challenge.Challenge) > 0 {
		response.Challenge = base64.StdEncoding.EncodeToString(challenge.Challenge)
	}
	return response
}

// SessionResponse represents an unlock session in API responses. The session
// token is never included; it is returned once by CompleteUnlockResponse.
type SessionResponse struct {
	ID        string    `json:"id"`
	SafeID    string    `json:"safe_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapSessionToResponse converts a domain session to an API response.
func MapSessionToResponse(session *safeDomain.SafeSession) SessionResponse {
	return SessionResponse{
		ID:        session.ID.String(),
		SafeID:    session.SafeID.String(),
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
}

// CompleteUnlockResponse contains the result of a finished unlock handshake.
// SECURITY: The session token is only returned once and must be saved securely.
type CompleteUnlockResponse struct {
	SessionToken string          `json:"session_token"`
	Session      SessionResponse `json:"session"`
}
