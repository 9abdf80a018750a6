package models

import "gorm.io/gorm"

type Skill struct {
	gorm.Model

	Name        string `gorm:"not null" json:"name"`
	Proficiency int    `gorm:"default:75" json:"proficiency"`
	Category    string `gorm:"default:other" json:"category"`
	Icon        string `json:"icon"`
}
