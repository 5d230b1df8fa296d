package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Generic is the base embedded by every persisted model.
type Generic struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsDuplicate reports whether err is a unique-constraint violation. Postgres
// reports "duplicate key", SQLite (used in tests) "UNIQUE constraint failed";
// with TranslateError enabled gorm maps both to ErrDuplicatedKey, the string
// checks cover drivers that don't translate.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
