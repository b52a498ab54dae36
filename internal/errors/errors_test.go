package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("WrapNil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("PreservesSentinel", func(t *testing.T) {
		err := Wrap(ErrForbidden, "safe is locked")
		assert.True(t, Is(err, ErrForbidden))
		assert.Equal(t, "safe is locked: forbidden", err.Error())
	})

	t.Run("NestedWrapPreservesSentinel", func(t *testing.T) {
		err := Wrap(Wrap(ErrNotFound, "safe not found"), "unlock challenge")
		assert.True(t, Is(err, ErrNotFound))
	})
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden, ErrStorage}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, Is(a, b), "%v should not match %v", a, b)
		}
	}
}
