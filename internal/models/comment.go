package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reader comment on a published article. Replies nest
// exactly one level: a reply's parent must itself be a top-level
// comment on the same article.
type Comment struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	ArticleID uuid.UUID  `json:"article_id" db:"article_id" gorm:"type:uuid;not null;index"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	ParentID  *uuid.UUID `json:"parent_id" db:"parent_id" gorm:"type:uuid;index"`
	Content   string     `json:"content" db:"content" gorm:"type:text;not null"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User    User      `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

// TableName sets the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}
