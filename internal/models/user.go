package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the reference identity record the core reads for authorship,
// social edges and authorization checks. Credential handling and signup
// live outside this service; rows here are provisioned by that system.
type User struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid"`
	Username    string    `json:"username" db:"username" gorm:"uniqueIndex;not null"`
	DisplayName string    `json:"display_name" db:"display_name"`
	Bio         string    `json:"bio" db:"bio"`
	Avatar      string    `json:"avatar" db:"avatar"`
	IsActive    bool      `json:"is_active" db:"is_active" gorm:"default:true"`
	IsSuperuser bool      `json:"is_superuser" db:"is_superuser" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
