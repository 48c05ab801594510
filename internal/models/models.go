// Package models contains all data models for the inkstream application
package models

import (
	"gorm.io/gorm"
)

// AllModels returns a slice of all model types for database migrations
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Topic{},
		&Article{},
		&Comment{},
		&Clap{},
		&Favorite{},
		&Pin{},
		&ReadingHistory{},
		&Follow{},
		&TopicFollow{},
		&Recommendation{},
		&Report{},
		&Notification{},
		&FAQ{},
	}
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
