package model

import (
	"time"
)

type ResponseStatus string

const (
	StatusPending  ResponseStatus = "pending"
	StatusApproved ResponseStatus = "approved"
	StatusPosted   ResponseStatus = "posted"
)

// Response is the drafted reply for a review. At most one response exists
// per review; regeneration overwrites the text and resets status to pending.
type Response struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	ReviewID     uint           `gorm:"uniqueIndex;not null" json:"review_id"`
	ResponseText string         `gorm:"type:text;not null" json:"response_text"`
	Status       ResponseStatus `gorm:"type:varchar(20);default:'pending';not null" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`

	Review *Review `gorm:"foreignKey:ReviewID" json:"review,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}
