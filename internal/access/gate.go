// Package access implements the permission overlay for item content and key
// material. A baseline PermissionService answers who may view or edit an item
// from ownership, shares, and folder membership; Gate wraps that baseline and
// layers lock-state on top: no grant survives a locked safe, for owners and
// recipients alike.
//
// All methods return plain booleans. Internal failures (storage errors,
// unreachable session store) deny access rather than surfacing an error, so
// callers cannot distinguish "denied" from "broken" and probe the difference.
package access

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

// SessionChecker reports whether a safe is unlocked for a user. Satisfied by
// the safe session use case.
type SessionChecker interface {
	IsUnlocked(ctx context.Context, safeID, userID uuid.UUID) (bool, error)
}

// ShareChecker looks up a recipient's share on an item. Satisfied by the
// shared key repository.
type ShareChecker interface {
	GetByItemAndRecipient(ctx context.Context, itemID, recipientID uuid.UUID) (*envelopeDomain.SharedKey, error)
}

// FolderKeyChecker looks up a folder's key map. Satisfied by the folder key
// repository.
type FolderKeyChecker interface {
	Get(ctx context.Context, folderID uuid.UUID) (*envelopeDomain.FolderKey, error)
}

// PermissionService answers content-permission questions for items, ignoring
// lock state. Gate consumes a PermissionService and augments it with the
// safe unlock requirement.
type PermissionService interface {
	// CanView reports whether the user may read the item's content and keys.
	CanView(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool

	// CanEdit reports whether the user may modify or delete the item.
	CanEdit(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool
}

// OwnershipPermissions is the baseline PermissionService: viewing comes from
// ownership, a direct share, or a folder key entry; editing is owner-only.
// It knows nothing about safes or sessions.
type OwnershipPermissions struct {
	shares     ShareChecker
	folderKeys FolderKeyChecker
}

// NewOwnershipPermissions creates the baseline permission service.
func NewOwnershipPermissions(shares ShareChecker, folderKeys FolderKeyChecker) *OwnershipPermissions {
	return &OwnershipPermissions{
		shares:     shares,
		folderKeys: folderKeys,
	}
}

// CanView reports whether userID may read the item, ignoring lock state.
func (o *OwnershipPermissions) CanView(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	if item == nil {
		return false
	}
	if item.OwnerID == userID {
		return true
	}
	if o.hasShare(ctx, userID, item) {
		return true
	}
	return o.hasFolderKey(ctx, userID, item)
}

// CanEdit reports whether userID may modify or delete the item. Editing is
// owner-only; recipients of shares can read, never write.
func (o *OwnershipPermissions) CanEdit(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	return item != nil && item.OwnerID == userID
}

func (o *OwnershipPermissions) hasShare(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	_, err := o.shares.GetByItemAndRecipient(ctx, item.ID, userID)
	return err == nil
}

func (o *OwnershipPermissions) hasFolderKey(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	if item.FolderID == uuid.Nil {
		return false
	}
	folderKey, err := o.folderKeys.Get(ctx, item.FolderID)
	if err != nil {
		return false
	}
	_, ok := folderKey.KeyFor(userID)
	return ok
}

// Gate wraps a PermissionService with the safe lock veto: for items in safes,
// every requester must hold a live unlock session before the baseline answer
// counts. Gate itself implements PermissionService and satisfies the envelope
// key store's AccessChecker via CanAccess.
type Gate struct {
	base     PermissionService
	sessions SessionChecker
	logger   *slog.Logger
}

// NewGate wraps base with the lock veto.
func NewGate(base PermissionService, sessions SessionChecker, logger *slog.Logger) *Gate {
	return &Gate{
		base:     base,
		sessions: sessions,
		logger:   logger,
	}
}

// CanAccess reports whether userID may read item content and key material.
// Items in safes require a live unlock session for the requester, whoever
// they are; only then does the baseline ownership/share answer apply.
func (g *Gate) CanAccess(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	return g.CanView(ctx, userID, item)
}

// CanView is the lock-aware view check.
func (g *Gate) CanView(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	if item == nil {
		return false
	}
	if !g.unlockedFor(ctx, userID, item) {
		return false
	}
	return g.base.CanView(ctx, userID, item)
}

// CanEdit is the lock-aware edit check.
func (g *Gate) CanEdit(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	if item == nil {
		return false
	}
	if !g.unlockedFor(ctx, userID, item) {
		return false
	}
	return g.base.CanEdit(ctx, userID, item)
}

// unlockedFor applies the lock veto. Items outside safes are always open;
// items in safes require the requester's own live session.
func (g *Gate) unlockedFor(ctx context.Context, userID uuid.UUID, item *envelopeDomain.Item) bool {
	if !item.InSafe() {
		return true
	}
	unlocked, err := g.sessions.IsUnlocked(ctx, item.SafeID, userID)
	if err != nil {
		g.logger.Error("access check failed, denying", slog.String("item_id", item.ID.String()), slog.Any("error", err))
		return false
	}
	return unlocked
}
