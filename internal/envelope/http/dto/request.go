// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/photosafe/internal/validation"
)

// maxMigrateBatchItems bounds one migration request.
const maxMigrateBatchItems = 100

// UploadKeyRequest contains the owner's wrap of an item's content key. Both
// fields are base64-encoded ciphertext; the thumbnail wrap is optional.
type UploadKeyRequest struct {
	EncryptedKey          string `json:"encrypted_key"`
	ThumbnailEncryptedKey string `json:"thumbnail_encrypted_key,omitempty"`
}

// Validate checks if the upload key request is valid.
func (r *UploadKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EncryptedKey,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.ThumbnailEncryptedKey,
			customValidation.Base64,
		),
	)
}

// ShareKeyRequest contains the parameters for sharing an item: the recipient
// and the content key wrapped under the recipient's public key.
type ShareKeyRequest struct {
	RecipientID  string `json:"recipient_id"`
	EncryptedKey string `json:"encrypted_key"`
}

// Validate checks if the share key request is valid.
func (r *ShareKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RecipientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.EncryptedKey,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// CreateFolderKeyRequest contains the creator's own wrap of a new folder key.
type CreateFolderKeyRequest struct {
	WrappedKey string `json:"wrapped_key"`
}

// Validate checks if the create folder key request is valid.
func (r *CreateFolderKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.WrappedKey,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// ShareFolderKeyRequest contains a member's wrap of the folder key.
type ShareFolderKeyRequest struct {
	WrappedKey string `json:"wrapped_key"`
}

// Validate checks if the share folder key request is valid.
func (r *ShareFolderKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.WrappedKey,
			validation.Required,
			customValidation.Base64,
		),
	)
}

// MigrateItemRequest carries one item's client-wrapped content key for the
// legacy-to-envelope migration.
type MigrateItemRequest struct {
	ItemID                string `json:"item_id"`
	EncryptedKey          string `json:"encrypted_key"`
	ThumbnailEncryptedKey string `json:"thumbnail_encrypted_key,omitempty"`
}

// Validate checks if the migrate item entry is valid.
func (r MigrateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.EncryptedKey,
			validation.Required,
			customValidation.Base64,
		),
		validation.Field(&r.ThumbnailEncryptedKey,
			customValidation.Base64,
		),
	)
}

// MigrateBatchRequest contains a batch of items to move from legacy to
// envelope mode.
type MigrateBatchRequest struct {
	Items []MigrateItemRequest `json:"items"`
}

// Validate checks if the migrate batch request is valid.
func (r *MigrateBatchRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Items,
			validation.Required,
			validation.Length(1, maxMigrateBatchItems),
		),
	)
}
