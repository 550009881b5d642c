package model

import (
	"time"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleSupport UserRole = "support"
	RoleViewer  UserRole = "viewer"
)

// User belongs to exactly one business. Role is a capability tag reserved
// for future authorization rules; no permission differences are enforced yet.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BusinessID   uint      `gorm:"not null;index" json:"business_id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'admin'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Business *Business `gorm:"foreignKey:BusinessID" json:"business,omitempty"`
}

func (User) TableName() string {
	return "users"
}
