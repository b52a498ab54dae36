package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
	apperrors "github.com/allisson/photosafe/internal/errors"
)

func TestCacheKeyWrapper_RoundTrip(t *testing.T) {
	wrapper := NewCacheKeyWrapper(cryptoService.NewAEADManager())
	userID := uuid.Must(uuid.NewV7())
	key := []byte("user-cached-decryption-key-32by!")

	ciphertext, nonce, err := wrapper.Wrap(userID, "cred-1", key)
	require.NoError(t, err)
	assert.NotEqual(t, key, ciphertext)
	assert.Len(t, nonce, 12)

	got, err := wrapper.Unwrap(userID, "cred-1", ciphertext, nonce)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestCacheKeyWrapper_WrongCredentialFails(t *testing.T) {
	wrapper := NewCacheKeyWrapper(cryptoService.NewAEADManager())
	userID := uuid.Must(uuid.NewV7())
	key := []byte("user-cached-decryption-key-32by!")

	ciphertext, nonce, err := wrapper.Wrap(userID, "cred-1", key)
	require.NoError(t, err)

	_, err = wrapper.Unwrap(userID, "cred-2", ciphertext, nonce)
	assert.Error(t, err)
}

func TestCacheKeyWrapper_WrongUserFails(t *testing.T) {
	wrapper := NewCacheKeyWrapper(cryptoService.NewAEADManager())
	key := []byte("user-cached-decryption-key-32by!")

	ciphertext, nonce, err := wrapper.Wrap(uuid.Must(uuid.NewV7()), "cred-1", key)
	require.NoError(t, err)

	_, err = wrapper.Unwrap(uuid.Must(uuid.NewV7()), "cred-1", ciphertext, nonce)
	assert.Error(t, err)
}

func TestCacheKeyWrapper_TamperedCiphertextFails(t *testing.T) {
	wrapper := NewCacheKeyWrapper(cryptoService.NewAEADManager())
	userID := uuid.Must(uuid.NewV7())
	key := []byte("user-cached-decryption-key-32by!")

	ciphertext, nonce, err := wrapper.Wrap(userID, "cred-1", key)
	require.NoError(t, err)

	ciphertext[0] ^= 0xff
	_, err = wrapper.Unwrap(userID, "cred-1", ciphertext, nonce)
	assert.Error(t, err)
}

func TestCacheKeyWrapper_EmptyCredentialID(t *testing.T) {
	wrapper := NewCacheKeyWrapper(cryptoService.NewAEADManager())

	_, _, err := wrapper.Wrap(uuid.Must(uuid.NewV7()), "", []byte("key"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
