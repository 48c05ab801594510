package models

import (
	"time"

	"github.com/google/uuid"
)

// Article lifecycle states. Only published articles are visible in
// public feeds, search, and engagement actions.
const (
	StatusDraft   = "draft"
	StatusPending = "pending"
	StatusPublish = "publish"
	StatusPrivate = "private"
	StatusTrash   = "trash"
	StatusArchive = "archive"
)

// ValidStatus reports whether s is a known article status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublish, StatusPrivate, StatusTrash, StatusArchive:
		return true
	}
	return false
}

// Article represents an authored piece of content tagged with topics.
// Articles are never hard-deleted; removal is a status transition to
// trash.
type Article struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`
	Title     string    `json:"title" db:"title" gorm:"not null"`
	Summary   string    `json:"summary" db:"summary" gorm:"type:text"`
	Content   string    `json:"content" db:"content" gorm:"type:text"` // Markdown source
	Thumbnail string    `json:"thumbnail" db:"thumbnail"`              // storage reference, upload handled elsewhere
	Status    string    `json:"status" db:"status" gorm:"not null;default:draft;index"`

	// Engagement counters, best-effort (incremented atomically but
	// at-least-once under concurrent requests)
	ViewsCount int `json:"views_count" db:"views_count" gorm:"default:0"`
	ReadsCount int `json:"reads_count" db:"reads_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Author User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Topics []*Topic `json:"topics,omitempty" gorm:"many2many:article_topics;"`
}

// TableName sets the table name for the Article model
func (Article) TableName() string {
	return "articles"
}

// IsPublished reports whether the article is publicly visible.
func (a *Article) IsPublished() bool {
	return a.Status == StatusPublish
}
