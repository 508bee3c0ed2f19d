package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string     `gorm:"size:100;uniqueIndex:idx_users_username;not null" json:"username"`
	Email        string     `gorm:"size:200;uniqueIndex:idx_users_email;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Active       bool       `gorm:"not null" json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
}
