package models

import (
	"time"

	"gorm.io/gorm"
)

// Resume is a stored resume file. At most one record is active at a time;
// the active record is the one served to viewers.
type Resume struct {
	gorm.Model

	Filename   string    `gorm:"not null" json:"filename"`
	Path       string    `gorm:"not null" json:"-"`
	URL        string    `json:"url"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadDate"`
	IsActive   bool      `gorm:"default:true;index" json:"isActive"`
}
