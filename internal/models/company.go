package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	Name      string `gorm:"size:255;not null" json:"name"`
	Industry  string `gorm:"size:100" json:"industry"`
	Headcount int    `json:"headcount"`
}
