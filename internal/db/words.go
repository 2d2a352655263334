package db

import (
	"activity-game/internal/game"

	"gorm.io/gorm"
)

// UpsertWord inserts a word into the bank if it is not already present.
// Used by the bulk loader.
func UpsertWord(conn *gorm.DB, value string, method game.MethodType) error {
	entry := Word{Value: value, Method: method.String()}
	return conn.FirstOrCreate(&entry, Word{Value: value, Method: method.String()}).Error
}
