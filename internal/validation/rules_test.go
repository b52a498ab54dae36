package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/photosafe/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(apperrors.New("name: must not be blank"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("family photos"))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate(""))
}

func TestCiphertext(t *testing.T) {
	assert.NoError(t, Ciphertext.Validate(make([]byte, 32)))
	assert.NoError(t, Ciphertext.Validate(make([]byte, MinCiphertextBytes)))
	assert.Error(t, Ciphertext.Validate(make([]byte, MinCiphertextBytes-1)))
	assert.NoError(t, Ciphertext.Validate([]byte{}), "empty handled by Required")
	assert.Error(t, Ciphertext.Validate("not bytes"))
}

func TestSalt(t *testing.T) {
	assert.NoError(t, Salt.Validate(make([]byte, 16)))
	assert.Error(t, Salt.Validate(make([]byte, MinSaltBytes-1)))
	assert.NoError(t, Salt.Validate([]byte{}), "empty handled by Required")
}

func TestBase64(t *testing.T) {
	assert.NoError(t, Base64.Validate("aGVsbG8="))
	assert.NoError(t, Base64.Validate(""))
	assert.Error(t, Base64.Validate("!!not-base64!!"))
	assert.Error(t, Base64.Validate(42))
}
