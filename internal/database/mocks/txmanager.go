// Package mocks provides test doubles for the database package.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. By default it
// runs the callback directly without a real transaction; tests that need to
// assert on transaction boundaries can set explicit expectations instead.
type MockTxManager struct {
	mock.Mock
}

// NewMockTxManager creates a MockTxManager whose WithTx passes the context
// through to the callback. Expectations are asserted on test cleanup.
func NewMockTxManager(t *testing.T) *MockTxManager {
	t.Helper()

	m := &MockTxManager{}
	m.On("WithTx", mock.Anything, mock.Anything).Maybe().Return(nil)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// WithTx runs fn with the given context. The returned error is fn's error
// unless an expectation overrides it.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := fn(ctx); err != nil {
		return err
	}
	return args.Error(0)
}
