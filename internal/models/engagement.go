package models

import (
	"time"

	"github.com/google/uuid"
)

// Clap is a bounded per-user-per-article appreciation counter.
// count stays within [0, ClapCap]; the cap is a silent clamp, never an
// error.
type Clap struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_claps_user_article,priority:1"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;not null;uniqueIndex:idx_claps_user_article,priority:2"`
	Count     int       `json:"count" db:"count" gorm:"default:0"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// Favorite marks an article as a user's favorite. Presence of the row
// is the membership; duplicate creates are rejected.
type Favorite struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_article,priority:1"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_article,priority:2"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// Pin marks an article as pinned by a user.
type Pin struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_pins_user_article,priority:1"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;not null;uniqueIndex:idx_pins_user_article,priority:2"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// ReadingHistory records that a user retrieved an article's detail
// view. Created get-or-create; used as an implicit preference signal.
type ReadingHistory struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	UserID    uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reading_history_user_article,priority:1"`
	ArticleID uuid.UUID `json:"article_id" db:"article_id" gorm:"type:uuid;not null;uniqueIndex:idx_reading_history_user_article,priority:2"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName methods
func (Clap) TableName() string {
	return "claps"
}

func (Favorite) TableName() string {
	return "favorites"
}

func (Pin) TableName() string {
	return "pins"
}

func (ReadingHistory) TableName() string {
	return "reading_history"
}
