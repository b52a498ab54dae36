package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

type mockLegacyItemLister struct {
	mock.Mock
}

func (m *mockLegacyItemLister) ListLegacyByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*envelopeDomain.Item, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*envelopeDomain.Item), args.Error(1)
}

func TestMigrateEnvelopeReport(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ownerID := uuid.Must(uuid.NewV7())

	pending := []*envelopeDomain.Item{
		{
			ID:          uuid.Must(uuid.NewV7()),
			OwnerID:     ownerID,
			StorageMode: envelopeDomain.StorageModeLegacy,
			CreatedAt:   time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.Must(uuid.NewV7()),
			OwnerID:     ownerID,
			StorageMode: envelopeDomain.StorageModeLegacy,
			CreatedAt:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	t.Run("text-output", func(t *testing.T) {
		items := &mockLegacyItemLister{}
		items.On("ListLegacyByOwner", ctx, ownerID, 100).Return(pending, nil)

		var out bytes.Buffer
		err := migrateEnvelopeReport(ctx, items, logger, &out, ownerID.String(), 100, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "has 2 item(s) pending envelope migration")
		require.Contains(t, out.String(), pending[0].ID.String())
		items.AssertExpectations(t)
	})

	t.Run("json-output", func(t *testing.T) {
		items := &mockLegacyItemLister{}
		items.On("ListLegacyByOwner", ctx, ownerID, 100).Return(pending, nil)

		var out bytes.Buffer
		err := migrateEnvelopeReport(ctx, items, logger, &out, ownerID.String(), 100, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"pending": 2`)
		require.Contains(t, out.String(), pending[1].ID.String())
		items.AssertExpectations(t)
	})

	t.Run("no-pending-items", func(t *testing.T) {
		items := &mockLegacyItemLister{}
		items.On("ListLegacyByOwner", ctx, ownerID, 100).Return([]*envelopeDomain.Item{}, nil)

		var out bytes.Buffer
		err := migrateEnvelopeReport(ctx, items, logger, &out, ownerID.String(), 100, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "has 0 item(s) pending envelope migration")
		items.AssertExpectations(t)
	})

	t.Run("invalid-user-id", func(t *testing.T) {
		items := &mockLegacyItemLister{}

		err := migrateEnvelopeReport(ctx, items, logger, &bytes.Buffer{}, "not-a-uuid", 100, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid user id")
	})

	t.Run("invalid-limit", func(t *testing.T) {
		items := &mockLegacyItemLister{}

		err := migrateEnvelopeReport(ctx, items, logger, &bytes.Buffer{}, ownerID.String(), 0, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "limit must be a positive number")
	})

	t.Run("invalid-format", func(t *testing.T) {
		items := &mockLegacyItemLister{}

		err := migrateEnvelopeReport(ctx, items, logger, &bytes.Buffer{}, ownerID.String(), 100, "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
	})

	t.Run("repository-error", func(t *testing.T) {
		items := &mockLegacyItemLister{}
		items.On("ListLegacyByOwner", ctx, ownerID, 100).Return(nil, errors.New("database error"))

		err := migrateEnvelopeReport(ctx, items, logger, &bytes.Buffer{}, ownerID.String(), 100, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to list legacy items")
		items.AssertExpectations(t)
	})
}
