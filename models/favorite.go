package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Favorite is one symbol on a user's watchlist. Insertion order is the display
// order.
type Favorite struct {
	Generic

	UserID uint   `gorm:"uniqueIndex:idx_favorites_user_symbol;not null" json:"user_id"`
	Symbol string `gorm:"uniqueIndex:idx_favorites_user_symbol;not null" json:"symbol"`
}

// AddFavorite inserts the symbol into the user's watchlist. The conflict
// clause makes the add an atomic set insert: re-adding an existing symbol is a
// no-op decided by the database, not by a prior read.
func AddFavorite(db *gorm.DB, userID uint, symbol string) error {
	favorite := Favorite{UserID: userID, Symbol: symbol}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
}

// RemoveFavorite deletes the row outright so the symbol can be re-added later
// without tripping the unique index on a soft-deleted row.
func RemoveFavorite(db *gorm.DB, userID uint, symbol string) error {
	return db.Unscoped().
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&Favorite{}).Error
}

func ListFavoriteSymbols(db *gorm.DB, userID uint) ([]string, error) {
	symbols := []string{}
	err := db.Model(&Favorite{}).
		Where("user_id = ?", userID).
		Order("id asc").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, err
	}

	return symbols, nil
}
