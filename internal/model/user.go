package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an authoring or reviewing account. Role drives what lifecycle
// transitions a user may enact.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`   // Omit password from JSON requests/responses
	Role      string         `gorm:"type:varchar(50);not null" json:"role"` // admin, reviewer, author
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// Roles allowed to enact review lifecycle transitions beyond SUBMIT.
const (
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"
	RoleAuthor   = "author"
)
