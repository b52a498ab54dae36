package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/allisson/photosafe/internal/app"
	"github.com/allisson/photosafe/internal/config"
	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

// legacyItemLister lists items still stored under the legacy scheme.
type legacyItemLister interface {
	ListLegacyByOwner(ctx context.Context, ownerID uuid.UUID, limit int) ([]*envelopeDomain.Item, error)
}

// RunMigrateEnvelope reports a user's items still pending envelope migration.
// Key wrapping happens on the client, so the server cannot migrate items
// itself; this command tells operators how far along a given account is. The
// actual migration runs through the batch migration API.
//
// Requirements: Database must be migrated and accessible.
func RunMigrateEnvelope(ctx context.Context, userID string, limit int, format string) error {
	// Load configuration
	cfg := config.Load()

	// Create DI container
	container := app.NewContainer(cfg)

	// Get logger from container
	logger := container.Logger()

	// Ensure cleanup on exit
	defer closeContainer(container, logger)

	itemRepo, err := container.ItemRepository()
	if err != nil {
		return fmt.Errorf("failed to initialize item repository: %w", err)
	}

	return migrateEnvelopeReport(ctx, itemRepo, logger, os.Stdout, userID, limit, format)
}

// migrateEnvelopeReport lists pending legacy items and writes the report.
func migrateEnvelopeReport(
	ctx context.Context,
	items legacyItemLister,
	logger *slog.Logger,
	out io.Writer,
	userID string,
	limit int,
	format string,
) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be a positive number, got: %d", limit)
	}

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user id: %w", err)
	}

	logger.Info("listing items pending envelope migration",
		slog.String("user_id", ownerID.String()),
		slog.Int("limit", limit),
	)

	pending, err := items.ListLegacyByOwner(ctx, ownerID, limit)
	if err != nil {
		return fmt.Errorf("failed to list legacy items: %w", err)
	}

	if format == "json" {
		outputMigrateEnvelopeJSON(out, ownerID, pending)
	} else {
		outputMigrateEnvelopeText(out, ownerID, pending)
	}

	logger.Info("pending migration report completed",
		slog.Int("pending", len(pending)),
	)

	return nil
}

// outputMigrateEnvelopeText writes the report in human-readable text format.
func outputMigrateEnvelopeText(out io.Writer, ownerID uuid.UUID, pending []*envelopeDomain.Item) {
	fmt.Fprintf(out, "User %s has %d item(s) pending envelope migration\n", ownerID, len(pending))
	for _, item := range pending {
		fmt.Fprintf(out, "  %s (created %s)\n", item.ID, item.CreatedAt.Format("2006-01-02"))
	}
}

// outputMigrateEnvelopeJSON writes the report in JSON format for machine consumption.
func outputMigrateEnvelopeJSON(out io.Writer, ownerID uuid.UUID, pending []*envelopeDomain.Item) {
	itemIDs := make([]string, 0, len(pending))
	for _, item := range pending {
		itemIDs = append(itemIDs, item.ID.String())
	}

	result := map[string]interface{}{
		"user_id":  ownerID.String(),
		"pending":  len(pending),
		"item_ids": itemIDs,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	fmt.Fprintln(out, string(jsonBytes))
}
