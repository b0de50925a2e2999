package models

import (
	"gorm.io/gorm"

	"hr-wizard/internal/workflow"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectLocked    ProjectStatus = "locked"
)

// Project is one workflow instance, exactly one per company. The ledger
// in StepStatuses is the source of truth; CurrentStep is a cached hint
// recomputed from the ledger on every mutation.
type Project struct {
	gorm.Model
	CompanyID uint    `gorm:"uniqueIndex;not null" json:"company_id"`
	Company   Company `json:"-"`

	Status       ProjectStatus    `gorm:"type:varchar(20);not null" json:"status"`
	CurrentStep  workflow.StepKey `gorm:"type:varchar(30);not null" json:"current_step"`
	StepStatuses workflow.Ledger  `gorm:"serializer:json" json:"step_statuses"`
}
