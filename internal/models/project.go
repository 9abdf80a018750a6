package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Title          string                      `gorm:"not null" json:"title"`
	Description    string                      `json:"description"`
	Image          string                      `json:"image"`
	Link           string                      `json:"link"`
	SourceCodeLink string                      `json:"sourceCodeLink"`
	Featured       bool                        `gorm:"default:false" json:"featured"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
}
