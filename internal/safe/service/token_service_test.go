package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_GenerateToken(t *testing.T) {
	svc := NewTokenService()

	plain, hash, err := svc.GenerateToken()
	require.NoError(t, err)
	assert.NotEmpty(t, plain)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, plain, hash)

	// The plain token decodes to 32 random bytes.
	raw, err := base64.URLEncoding.DecodeString(plain)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	// SHA-256 hex digest is 64 characters.
	assert.Len(t, hash, 64)
}

func TestTokenService_GenerateToken_Unique(t *testing.T) {
	svc := NewTokenService()

	plain1, hash1, err := svc.GenerateToken()
	require.NoError(t, err)
	plain2, hash2, err := svc.GenerateToken()
	require.NoError(t, err)

	assert.NotEqual(t, plain1, plain2)
	assert.NotEqual(t, hash1, hash2)
}

func TestTokenService_HashToken_Deterministic(t *testing.T) {
	svc := NewTokenService()

	assert.Equal(t, svc.HashToken("token"), svc.HashToken("token"))
	assert.NotEqual(t, svc.HashToken("token"), svc.HashToken("other"))
}
