package models

import (
	"github.com/google/uuid"
)

type ShareStatus string

const (
	ShareActive  ShareStatus = "active"
	ShareRevoked ShareStatus = "revoked"
)

// Share is one sharing relationship. SharedSymbols is the sharer's favorites
// frozen at share time; sharing again after a revoke creates a new row rather
// than mutating an old one.
//
// The partial unique index allows at most one active share per
// (sharer, recipient) pair while leaving revoked history out of the rule, so a
// prior revoked share never blocks a new one. The database owns this invariant;
// multiple service instances may write concurrently.
type Share struct {
	Generic

	// UUID is the identifier handed to clients. Row ids stay internal.
	UUID uuid.UUID `gorm:"uniqueIndex;not null" json:"share_id"`

	SharerID uint `gorm:"not null;index:idx_shares_active_pair,unique,where:status = 'active'" json:"-"`
	Sharer   User `json:"-"`

	RecipientID uint `gorm:"not null;index:idx_shares_active_pair,unique,where:status = 'active'" json:"-"`
	Recipient   User `json:"-"`

	SharedSymbols []string    `gorm:"serializer:json;not null" json:"shared_symbols"`
	Status        ShareStatus `gorm:"not null;default:'active'" json:"status"`
}
