package domain

import (
	"github.com/google/uuid"
)

// MigrateItemInput carries one item's client-wrapped content key for the
// legacy-to-envelope migration.
type MigrateItemInput struct {
	ItemID       uuid.UUID
	EncryptedKey []byte
	// ThumbnailEncryptedKey is optional; empty when the item has no
	// separately encrypted thumbnail.
	ThumbnailEncryptedKey []byte
}

// MigrateItemResult reports the outcome for one item in a migration batch.
type MigrateItemResult struct {
	ItemID   uuid.UUID
	Migrated bool
	// Reason explains a failed migration; empty on success.
	Reason string
}

// MigrateBatchOutput aggregates a migration batch. Each item migrates in its
// own transaction, so one failure never rolls back its neighbors.
type MigrateBatchOutput struct {
	Migrated int
	Failed   int
	Results  []MigrateItemResult
}
