package service

import (
	"crypto/sha256"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/photosafe/internal/crypto/domain"
	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

// wrapInfo domain-separates the HKDF derivation from any other use of the
// credential id.
const wrapInfo = "credential cache-key wrap v1"

// hkdfCacheKeyWrapper implements CacheKeyWrapper with HKDF-SHA256 key
// derivation and an AEAD cipher from the crypto service.
type hkdfCacheKeyWrapper struct {
	aeadManager cryptoService.AEADManager
}

// NewCacheKeyWrapper creates a CacheKeyWrapper backed by the AEAD manager.
func NewCacheKeyWrapper(aeadManager cryptoService.AEADManager) CacheKeyWrapper {
	return &hkdfCacheKeyWrapper{aeadManager: aeadManager}
}

// Wrap encrypts key under the credential-derived wrapping key.
func (h *hkdfCacheKeyWrapper) Wrap(
	userID uuid.UUID,
	credentialID string,
	key []byte,
) (ciphertext, nonce []byte, err error) {
	aead, err := h.cipherFor(credentialID)
	if err != nil {
		return nil, nil, err
	}
	return aead.Encrypt(key, userID[:])
}

// Unwrap decrypts a wrap produced by Wrap for the same user and credential.
func (h *hkdfCacheKeyWrapper) Unwrap(
	userID uuid.UUID,
	credentialID string,
	ciphertext, nonce []byte,
) ([]byte, error) {
	aead, err := h.cipherFor(credentialID)
	if err != nil {
		return nil, err
	}
	return aead.Decrypt(ciphertext, nonce, userID[:])
}

// cipherFor derives the 32-byte wrapping key for credentialID and builds an
// AEAD cipher over it. The credential id serves as both secret and salt: the
// derivation has no other input, so anyone proving possession of the
// credential (via a verified assertion) can re-derive the key.
func (h *hkdfCacheKeyWrapper) cipherFor(credentialID string) (cryptoService.AEAD, error) {
	if credentialID == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "credential_id is required")
	}

	reader := hkdf.New(sha256.New, []byte(credentialID), []byte(credentialID), []byte(wrapInfo))
	wrapKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, wrapKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive wrapping key")
	}

	return h.aeadManager.CreateCipher(wrapKey, cryptoDomain.AESGCM)
}
