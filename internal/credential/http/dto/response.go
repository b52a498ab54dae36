package dto

import (
	"encoding/base64"
	"time"

	credentialDomain "github.com/allisson/photosafe/internal/credential/domain"
)

// ChallengeResponse carries a one-time challenge, base64-encoded.
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
}

// MapChallengeToResponse converts a raw challenge to its response DTO.
func MapChallengeToResponse(challenge []byte) ChallengeResponse {
	return ChallengeResponse{
		Challenge: base64.StdEncoding.EncodeToString(challenge),
	}
}

// CredentialResponse represents a credential in API responses. The public key
// and any bound cache wrap stay server-side.
type CredentialResponse struct {
	ID           string    `json:"id"`
	CredentialID string    `json:"credential_id"`
	SignCount    uint32    `json:"sign_count"`
	HasCacheWrap bool      `json:"has_cache_wrap"`
	CreatedAt    time.Time `json:"created_at"`
}

// MapCredentialToResponse converts a domain credential to its response DTO.
func MapCredentialToResponse(cred *credentialDomain.Credential) CredentialResponse {
	return CredentialResponse{
		ID:           cred.ID.String(),
		CredentialID: cred.CredentialID,
		SignCount:    cred.SignCount,
		HasCacheWrap: cred.HasCacheWrap(),
		CreatedAt:    cred.CreatedAt,
	}
}

// ListCredentialsResponse represents a user's credentials.
type ListCredentialsResponse struct {
	Data []CredentialResponse `json:"data"`
}

// MapCredentialsToListResponse converts domain credentials to a list response DTO.
func MapCredentialsToListResponse(creds []*credentialDomain.Credential) ListCredentialsResponse {
	data := make([]CredentialResponse, len(creds))
	for i, cred := range creds {
		data[i] = MapCredentialToResponse(cred)
	}
	return ListCredentialsResponse{Data: data}
}
