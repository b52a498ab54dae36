// Package service provides AEAD cipher implementations and key-wrapping helpers.
package service

import (
	cryptoDomain "github.com/allisson/photosafe/internal/crypto/domain"
)

// AEAD defines authenticated encryption with associated data operations.
//
// Implementations must generate a fresh random nonce per Encrypt call and
// verify the authentication tag before returning plaintext from Decrypt.
type AEAD interface {
	// Encrypt encrypts plaintext with optional additional authenticated data.
	// Returns the ciphertext (tag appended) and the nonce used.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	// The same AAD supplied during encryption must be provided.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager creates AEAD cipher instances for a given key and algorithm.
type AEADManager interface {
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}
