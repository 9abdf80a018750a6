package models

import "time"

// Session is a server-side login record keyed by the id carried in the
// session cookie.
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"not null"`
	Role      string    `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
