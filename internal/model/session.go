package model

import "time"

// Session maps an opaque identifier to serialized authentication state.
// The sess column holds a JSON blob carrying at least the user id.
type Session struct {
	SID    string    `json:"sid" gorm:"column:sid;primaryKey;size:64"`
	Sess   string    `json:"sess" gorm:"column:sess;type:json;not null"`
	Expire time.Time `json:"expire" gorm:"column:expire;index;not null"`
}

// TableName pins the singular table name used by the schema.
func (Session) TableName() string { return "session" }
