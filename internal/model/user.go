package model

import "time"

// Role escalation statuses. A freshly registered account has none.
const (
	StatusMember = "member"
	StatusAdmin  = "admin"
)

// User represents a registered board user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Firstname    string    `json:"firstname" gorm:"size:50;not null"`
	Lastname     string    `json:"lastname" gorm:"size:50;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:20;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	Status       *string   `json:"status,omitempty" gorm:"size:10"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasStatus reports whether the user currently holds the given status.
func (u *User) HasStatus(status string) bool {
	return u.Status != nil && *u.Status == status
}

// DisplayStatus returns the status shown on rendered pages, "guest" for
// accounts that were never promoted.
func (u *User) DisplayStatus() string {
	if u.Status == nil || *u.Status == "" {
		return "guest"
	}
	return *u.Status
}
