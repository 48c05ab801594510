package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed follower -> followee edge between users.
type Follow struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	FollowerID uuid.UUID `json:"follower_id" db:"follower_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair,priority:1"`
	FolloweeID uuid.UUID `json:"followee_id" db:"followee_id" gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair,priority:2"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TopicFollow is a directed user -> topic edge.
type TopicFollow struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_topic_follows_pair,priority:1"`
	TopicID   uuid.UUID `json:"topic_id" db:"topic_id" gorm:"type:uuid;not null;uniqueIndex:idx_topic_follows_pair,priority:2"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// Notification is a persisted message for a user, produced as a side
// effect of social actions. read_at is set once and never unset.
type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	Message   string     `json:"message" db:"message" gorm:"type:text;not null"`
	ReadAt    *time.Time `json:"read_at" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName methods
func (Follow) TableName() string {
	return "follows"
}

func (TopicFollow) TableName() string {
	return "topic_follows"
}

func (Notification) TableName() string {
	return "notifications"
}
