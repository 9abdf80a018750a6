package models

import (
	"time"

	"gorm.io/gorm"
)

// Subscriber is a newsletter recipient. Unsubscribing deactivates the record
// rather than deleting it so a later re-subscribe reuses it.
type Subscriber struct {
	gorm.Model

	Email            string     `gorm:"uniqueIndex;not null" json:"email"`
	Name             string     `json:"name"`
	IsActive         bool       `gorm:"default:true;index" json:"isActive"`
	UnsubscribeToken string     `gorm:"uniqueIndex;not null" json:"-"`
	LastEmailSent    *time.Time `json:"lastEmailSent"`
	SubscribedAt     time.Time  `gorm:"autoCreateTime" json:"subscribedAt"`
}
