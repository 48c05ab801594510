package models

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a taggable category attached to articles many-to-many.
// Deactivating a topic excludes it from new associations; historical
// associations persist.
type Topic struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Name        string    `json:"name" db:"name" gorm:"not null"`
	Description string    `json:"description" db:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active" db:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the Topic model
func (Topic) TableName() string {
	return "topics"
}
