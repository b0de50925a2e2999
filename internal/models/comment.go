package models

import (
	"gorm.io/gorm"

	"hr-wizard/internal/workflow"
)

// StepComment is the consultant/CEO feedback channel attached to a step.
type StepComment struct {
	gorm.Model
	ProjectID uint             `gorm:"index;not null" json:"project_id"`
	Step      workflow.StepKey `gorm:"size:30;not null" json:"step"`
	UserID    uint             `gorm:"not null" json:"user_id"`
	User      User             `json:"user"`
	Body      string           `gorm:"type:text;not null" json:"body"`
}
