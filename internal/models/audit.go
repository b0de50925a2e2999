package models

import (
	"time"

	"hr-wizard/internal/workflow"
)

// ProjectAudit is the append-only trail of every mutating workflow
// action: actor, action label, step, and before/after ledger snapshots.
// Rows are written inside the same transaction as the mutation and are
// never updated or deleted.
type ProjectAudit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	ProjectID uint `gorm:"index;not null" json:"project_id"`
	UserID    uint `gorm:"not null" json:"user_id"`
	User      User `json:"user"`

	Action string           `gorm:"size:50;not null" json:"action"` // "save", "submit", "verify", "request_revision", "final_approve"
	Step   workflow.StepKey `gorm:"size:30" json:"step"`
	Before string           `gorm:"type:text" json:"before"`
	After  string           `gorm:"type:text" json:"after"`
}
