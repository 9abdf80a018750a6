package models

import "gorm.io/gorm"

// Admin and User are kept in separate tables; which one a login matched
// determines the role reported to the client.
type Admin struct {
	gorm.Model

	Name         string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
}

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:user"`
}
