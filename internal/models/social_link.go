package models

import "gorm.io/gorm"

type SocialLink struct {
	gorm.Model

	Platform     string `gorm:"not null" json:"platform"`
	URL          string `gorm:"not null" json:"url"`
	Icon         string `gorm:"default:'fas fa-link'" json:"icon"`
	DisplayName  string `json:"displayName"`
	IsActive     bool   `gorm:"default:true" json:"isActive"`
	DisplayOrder int    `gorm:"default:0" json:"displayOrder"`
}
