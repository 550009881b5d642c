package model

import (
	"time"
)

// Business is the tenant root. Every user and review hangs off exactly one
// business, and every query is scoped by business id.
type Business struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Users   []User   `gorm:"foreignKey:BusinessID" json:"users,omitempty"`
	Reviews []Review `gorm:"foreignKey:BusinessID" json:"reviews,omitempty"`
}

func (Business) TableName() string {
	return "businesses"
}
