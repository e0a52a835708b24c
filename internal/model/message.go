package model

import "time"

// Message is a board post. Messages are created and deleted, never updated.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the singular table name used by the schema.
func (Message) TableName() string { return "message" }
