package common

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDb opens the sqlite database at the given path. The handle is owned
// by the caller and passed into each module; nothing ambient.
func ConnectDb(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path not set")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db at %s: %w", path, err)
	}
	return db, nil
}
