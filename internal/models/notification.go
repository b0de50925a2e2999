package models

import (
	"time"

	"gorm.io/gorm"

	"hr-wizard/internal/workflow"
)

type NotificationType string

const (
	NotifyStepSubmitted     NotificationType = "step_submitted"
	NotifyStepVerified      NotificationType = "step_verified"
	NotifyRevisionRequested NotificationType = "revision_requested"
	NotifyProjectLocked     NotificationType = "project_locked"
)

type Notification struct {
	gorm.Model
	UserID    uint             `gorm:"index;not null" json:"user_id"`
	ProjectID uint             `gorm:"index;not null" json:"project_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Step      workflow.StepKey `gorm:"size:30" json:"step"`
	Message   string           `gorm:"type:text" json:"message"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
}
