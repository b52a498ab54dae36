package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserToken is a bearer API token. Only the SHA-256 hash is stored; the plain
// token is returned once at issuance.
type UserToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IssueTokenOutput carries the plain token back to the caller. It is never
// persisted or logged.
type IssueTokenOutput struct {
	PlainToken string
	ExpiresAt  time.Time
}
