package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is the per-user preference record: two disjoint topic
// sets accumulated from explicit feedback and implicit engagement
// signals. A topic is never a member of both sets at once; the move
// between sets happens inside a single transaction.
type Recommendation struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	MoreTopics []*Topic `json:"more_topics,omitempty" gorm:"many2many:recommendation_more_topics;"`
	LessTopics []*Topic `json:"less_topics,omitempty" gorm:"many2many:recommendation_less_topics;"`
}

// TableName sets the table name for the Recommendation model
func (Recommendation) TableName() string {
	return "recommendations"
}
