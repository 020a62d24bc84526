package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxMessageLength is the maximum number of characters in a message.
const MaxMessageLength = 140

// Message is a short text post owned by exactly one user.
// Messages are immutable after creation; there is no edit operation.
type Message struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Text   string `gorm:"size:140;not null" json:"text"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	// Liked indicates whether the current requesting user liked this message (computed)
	Liked     bool           `gorm:"->" json:"liked"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
