package dto

import (
	"encoding/base64"
	"time"

	envelopeDomain "github.com/allisson/photosafe/internal/envelope/domain"
)

// ItemKeyResponse acknowledges a stored item key. The wrapped blobs are not
// echoed back; clients fetch them through the key lookup endpoint.
type ItemKeyResponse struct {
	ItemID          string    `json:"item_id"`
	HasThumbnailKey bool      `json:"has_thumbnail_key"`
	CreatedAt       time.Time `json:"created_at"`
}

// MapItemKeyToResponse converts a domain item key to its response DTO.
func MapItemKeyToResponse(key *envelopeDomain.ItemKey) ItemKeyResponse {
	return ItemKeyResponse{
		ItemID:          key.ItemID.String(),
		HasThumbnailKey: len(key.ThumbnailEncryptedKey) > 0,
		CreatedAt:       key.CreatedAt,
	}
}

// KeyMaterialResponse carries the requester's wrap of an item's content key,
// base64-encoded. The thumbnail wrap is present only when one exists.
// StorageMode tells the client which decryption path applies; IsOwner
// distinguishes the owner's wrap from a share.
type KeyMaterialResponse struct {
	EncryptedKey          string `json:"encrypted_key"`
	ThumbnailEncryptedKey string `json:"thumbnail_encrypted_key,omitempty"`
	StorageMode           string `json:"storage_mode"`
	IsOwner               bool   `json:"is_owner"`
}

// MapKeyMaterialToResponse converts domain key material to its response DTO.
func MapKeyMaterialToResponse(material *envelopeDomain.KeyMaterial) KeyMaterialResponse {
	response := KeyMaterialResponse{
		EncryptedKey: base64.StdEncoding.EncodeToString(material.EncryptedKey),
		StorageMode:  string(material.StorageMode),
		IsOwner:      material.IsOwner,
	}
	if len(material.ThumbnailEncryptedKey) > 0 {
		response.ThumbnailEncryptedKey = base64.StdEncoding.EncodeToString(material.ThumbnailEncryptedKey)
	}
	return response
}

// SharedKeyResponse represents a share in API responses. The wrapped key is
// not included; recipients fetch it through the key lookup endpoint.
type SharedKeyResponse struct {
	ID          string    `json:"id"`
	ItemID      string    `json:"item_id"`
	RecipientID string    `json:"recipient_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapSharedKeyToResponse converts a domain share to its response DTO.
func MapSharedKeyToResponse(share *envelopeDomain.SharedKey) SharedKeyResponse {
	return SharedKeyResponse{
		ID:          share.ID.String(),
		ItemID:      share.ItemID.String(),
		RecipientID: share.RecipientID.String(),
		CreatedAt:   share.CreatedAt,
	}
}

// ListSharesResponse represents the shares on an item.
type ListSharesResponse struct {
	Data []SharedKeyResponse `json:"data"`
}

// MapSharesToListResponse converts domain shares to a list response DTO.
func MapSharesToListResponse(shares []*envelopeDomain.SharedKey) ListSharesResponse {
	data := make([]SharedKeyResponse, len(shares))
	for i, share := range shares {
		data[i] = MapSharedKeyToResponse(share)
	}
	return ListSharesResponse{Data: data}
}

// FolderKeyResponse acknowledges a created folder key map. Only membership
// metadata is returned, never the map itself.
type FolderKeyResponse struct {
	FolderID  string    `json:"folder_id"`
	CreatorID string    `json:"creator_id"`
	Members   int       `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

// MapFolderKeyToResponse converts a domain folder key to its response DTO.
func MapFolderKeyToResponse(folderKey *envelopeDomain.FolderKey) FolderKeyResponse {
	return FolderKeyResponse{
		FolderID:  folderKey.FolderID.String(),
		CreatorID: folderKey.CreatorID.String(),
		Members:   len(folderKey.Keys),
		CreatedAt: folderKey.CreatedAt,
	}
}

// WrappedKeyResponse carries the requester's own wrap of a folder key,
// base64-encoded. The full map is never exposed.
type WrappedKeyResponse struct {
	WrappedKey string `json:"wrapped_key"`
	IsOwner    bool   `json:"is_owner"`
}

// MapFolderKeyMaterialToResponse converts the requester's folder key material
// to its response DTO.
func MapFolderKeyMaterialToResponse(material *envelopeDomain.FolderKeyMaterial) WrappedKeyResponse {
	return WrappedKeyResponse{
		WrappedKey: base64.StdEncoding.EncodeToString(material.WrappedKey),
		IsOwner:    material.IsOwner,
	}
}

// MigrateItemResultResponse reports the outcome for one item in a migration
// batch.
type MigrateItemResultResponse struct {
	ItemID   string `json:"item_id"`
	Migrated bool   `json:"migrated"`
	Reason   string `json:"reason,omitempty"`
}

// MigrateBatchResponse aggregates a migration batch.
type MigrateBatchResponse struct {
	Migrated int                         `json:"migrated"`
	Failed   int                         `json:"failed"`
	Results  []MigrateItemResultResponse `json:"results"`
}

// MapMigrateBatchToResponse converts a domain migration output to its
// response DTO.
func MapMigrateBatchToResponse(output *envelopeDomain.MigrateBatchOutput) MigrateBatchResponse {
	results := make([]MigrateItemResultResponse, len(output.Results))
	for i, result := range output.Results {
		results[i] = MigrateItemResultResponse{
			ItemID:   result.ItemID.String(),
			Migrated: result.Migrated,
			Reason:   result.Reason,
		}
	}
	return MigrateBatchResponse{
		Migrated: output.Migrated,
		Failed:   output.Failed,
		Results:  results,
	}
}
