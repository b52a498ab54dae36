package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/photosafe/internal/errors"
)

func TestNewUser(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		user, err := NewUser("Alice", "Alice@Example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, EncryptionVersionLegacy, user.EncryptionVersion)
		assert.False(t, user.HasEncryptionSetup())
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewUser("  ", "alice@example.com")
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := NewUser("Alice", "")
		assert.ErrorIs(t, err, ErrEmailRequired)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := NewUser("Alice", "not-an-email")
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestUser_SetupEncryption(t *testing.T) {
	publicKey := []byte("client-public-key")
	encryptedDEK := []byte("wrapped-dek")
	dekSalt := []byte("kdf-salt")

	t.Run("moves account to envelope scheme", func(t *testing.T) {
		user, err := NewUser("Alice", "alice@example.com")
		require.NoError(t, err)

		err = user.SetupEncryption(publicKey, encryptedDEK, dekSalt, nil)
		require.NoError(t, err)
		assert.True(t, user.HasEncryptionSetup())
		assert.Equal(t, EncryptionVersionEnvelope, user.EncryptionVersion)
		assert.Empty(t, user.RecoveryEncryptedDEK)
	})

	t.Run("keeps optional recovery wrap", func(t *testing.T) {
		user, err := NewUser("Alice", "alice@example.com")
		require.NoError(t, err)

		recovery := []byte("recovery-wrapped-dek")
		require.NoError(t, user.SetupEncryption(publicKey, encryptedDEK, dekSalt, recovery))
		assert.Equal(t, recovery, user.RecoveryEncryptedDEK)
	})

	t.Run("rejects missing material", func(t *testing.T) {
		user, err := NewUser("Alice", "alice@example.com")
		require.NoError(t, err)

		assert.ErrorIs(t, user.SetupEncryption(nil, encryptedDEK, dekSalt, nil), errors.ErrInvalidInput)
		assert.ErrorIs(t, user.SetupEncryption(publicKey, nil, dekSalt, nil), errors.ErrInvalidInput)
		assert.ErrorIs(t, user.SetupEncryption(publicKey, encryptedDEK, nil, nil), errors.ErrInvalidInput)
		assert.False(t, user.HasEncryptionSetup())
	})
}
