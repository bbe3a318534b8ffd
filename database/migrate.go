package database

import (
	"github.com/fajarjulyana/VideoStreamPro/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the videos and comments tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Video{},
		&models.Comment{},
	)
}
