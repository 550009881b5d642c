package model

import (
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// SentimentForRating derives the sentiment tag from a 1-5 rating
func SentimentForRating(rating int) Sentiment {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating == 3:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// Review is an ingested customer review. Rows are immutable after ingestion
// except through their response.
type Review struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	BusinessID   uint      `gorm:"not null;index" json:"business_id"`
	Platform     string    `gorm:"type:varchar(50);not null" json:"platform"`
	CustomerName string    `gorm:"not null" json:"customer_name"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Sentiment    Sentiment `gorm:"type:varchar(30);default:'neutral';not null" json:"sentiment"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	ReviewDate   time.Time `gorm:"not null;index" json:"review_date"`

	Business *Business `gorm:"foreignKey:BusinessID" json:"-"`
	Response *Response `gorm:"foreignKey:ReviewID" json:"response,omitempty"`
}

func (Review) TableName() string {
	return "reviews"
}
