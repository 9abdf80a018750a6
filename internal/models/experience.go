package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Experience struct {
	gorm.Model

	Role           string                      `gorm:"not null" json:"role"`
	Company        string                      `gorm:"not null" json:"company"`
	Location       string                      `gorm:"default:Remote" json:"location"`
	StartDate      time.Time                   `gorm:"not null" json:"startDate"`
	EndDate        *time.Time                  `json:"endDate"` // nil means "Present"
	Description    string                      `json:"description"`
	Technologies   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"technologies"`
	CompanyLogo    string                      `json:"companyLogo"`
	CompanyWebsite string                      `json:"companyWebsite"`
	Achievements   datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"achievements"`
	EmploymentType string                      `gorm:"default:Full-time" json:"employmentType"`
	DisplayOrder   int                         `gorm:"default:0" json:"order"`
}
