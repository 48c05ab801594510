package models

import (
	"time"

	"github.com/google/uuid"
)

// FAQ is a public question/answer entry.
type FAQ struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Question  string    `json:"question" db:"question" gorm:"not null"`
	Answer    string    `json:"answer" db:"answer" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the FAQ model
func (FAQ) TableName() string {
	return "faqs"
}
