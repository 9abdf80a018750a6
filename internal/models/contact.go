package models

import "gorm.io/gorm"

type Contact struct {
	gorm.Model

	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null" json:"email"`
	Message string `gorm:"not null" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"isRead"`
}
