package database

import (
	"gorm.io/gorm"

	"inkwell/models"
)

// RunMigrations creates or updates the users, blog_posts and comments tables.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.BlogPost{},
		&models.Comment{},
	)
}
