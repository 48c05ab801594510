package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Report is the per-article moderation aggregate: the set of distinct
// users who reported the article. Crossing the reporter threshold
// transitions the article to trash.
type Report struct {
	ID          uuid.UUID      `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	ArticleID   uuid.UUID      `json:"article_id" db:"article_id" gorm:"type:uuid;not null;uniqueIndex"`
	ReporterIDs pq.StringArray `json:"reporter_ids" db:"reporter_ids" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// HasReporter reports whether the given user already reported the
// article.
func (r *Report) HasReporter(userID uuid.UUID) bool {
	id := userID.String()
	for _, existing := range r.ReporterIDs {
		if existing == id {
			return true
		}
	}
	return false
}
