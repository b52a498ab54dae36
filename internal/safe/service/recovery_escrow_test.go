package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/photosafe/internal/crypto/service"
)

func TestRecoveryEscrowService_Disabled(t *testing.T) {
	svc := NewRecoveryEscrowService(cryptoService.NewKMSService(), "")

	assert.False(t, svc.Enabled())

	_, err := svc.Wrap(context.Background(), []byte("recovery-wrapped-dek"))
	assert.Error(t, err)
}

func TestRecoveryEscrowService_RoundTrip(t *testing.T) {
	// base64key:// is the local gocloud.dev provider; no external KMS needed.
	keyURI := "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="
	svc := NewRecoveryEscrowService(cryptoService.NewKMSService(), keyURI)
	ctx := context.Background()

	assert.True(t, svc.Enabled())

	recovery := []byte("recovery-wrapped-dek-ciphertext!")
	wrapped, err := svc.Wrap(ctx, recovery)
	require.NoError(t, err)
	assert.NotEqual(t, recovery, wrapped)

	unwrapped, err := svc.Unwrap(ctx, wrapped)
	require.NoError(t, err)
	assert.Equal(t, recovery, unwrapped)
}

func TestRecoveryEscrowService_UnwrapGarbage(t *testing.T) {
	keyURI := "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="
	svc := NewRecoveryEscrowService(cryptoService.NewKMSService(), keyURI)

	_, err := svc.Unwrap(context.Background(), []byte("not-a-valid-ciphertext"))
	assert.Error(t, err)
}
