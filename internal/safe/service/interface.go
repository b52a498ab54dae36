// Package service provides technical services for safe unlock sessions.
//
// This package implements reusable services for session token generation and
// optional KMS escrow of recovery key wraps.
package service

import "context"

// TokenService defines operations for session token generation and hashing.
// Implementations must use cryptographically secure random generation and
// fast hashing algorithms suitable for short-lived tokens (e.g., SHA-256).
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	// Returns both the plain text token (returned to the client exactly once)
	// and the hashed version (to be stored in the database).
	GenerateToken() (plainToken string, tokenHash string, error error)

	// HashToken hashes a plain text token using SHA-256.
	// Used for session lookup by comparing hashes.
	HashToken(plainToken string) string
}

// RecoveryEscrowService wraps recovery DEK ciphertexts under an organization
// KMS key so that an account-recovery flow can restore access without the
// server ever holding the plaintext DEK.
type RecoveryEscrowService interface {
	// Wrap encrypts a recovery ciphertext under the escrow KMS key.
	Wrap(ctx context.Context, recoveryEncryptedDEK []byte) ([]byte, error)

	// Unwrap reverses Wrap, returning the original recovery ciphertext.
	// The result is still ciphertext under the user's recovery key.
	Unwrap(ctx context.Context, escrowWrapped []byte) ([]byte, error)

	// Enabled reports whether escrow is configured for this deployment.
	Enabled() bool
}
