package models

import "gorm.io/gorm"

// Content holds the site's single editable content blob.
type Content struct {
	gorm.Model

	Content string `gorm:"not null" json:"content"`
}
