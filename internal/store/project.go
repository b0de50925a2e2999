// Package store owns every ledger mutation. Each one runs as a single
// transaction: lock the project row, validate, write the new ledger,
// write the audit row. All-or-nothing; callers dispatch notifications
// after the commit.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/models"
	"hr-wizard/internal/workflow"
)

// Audit action labels.
const (
	ActionSave            = "save"
	ActionSubmit          = "submit"
	ActionVerify          = "verify"
	ActionRequestRevision = "request_revision"
	ActionFinalApprove    = "final_approve"
)

func CreateProjectForCompany(db *gorm.DB, companyID uint) (*models.Project, error) {
	ledger := workflow.NewLedger()
	p := models.Project{
		CompanyID:    companyID,
		Status:       models.ProjectDraft,
		CurrentStep:  workflow.CurrentStep(ledger),
		StepStatuses: ledger,
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func GetProject(db *gorm.DB, id uint) (*models.Project, error) {
	var p models.Project
	if err := db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	p.StepStatuses = workflow.Initialize(p.StepStatuses)
	return &p, nil
}

func GetProjectByCompany(db *gorm.DB, companyID uint) (*models.Project, error) {
	var p models.Project
	if err := db.Where("company_id = ?", companyID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	p.StepStatuses = workflow.Initialize(p.StepStatuses)
	return &p, nil
}

// lockForUpdate takes a pessimistic row lock against lost updates on
// concurrent submit/verify. SQLite has no FOR UPDATE grammar and
// serializes writers anyway, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// mutateFn applies the actual ledger change and any answer-set writes.
// It runs with the project row locked.
type mutateFn func(tx *gorm.DB, p *models.Project) error

func mutate(db *gorm.DB, projectID, userID uint, action string, step workflow.StepKey, fn mutateFn) (*models.Project, error) {
	var out models.Project

	err := db.Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := lockForUpdate(tx).First(&p, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrNotFound
			}
			return err
		}

		p.StepStatuses = workflow.Initialize(p.StepStatuses)
		before, _ := json.Marshal(p.StepStatuses)

		if err := fn(tx, &p); err != nil {
			return err
		}

		// current_step is a cached hint only; always recompute
		p.CurrentStep = workflow.CurrentStep(p.StepStatuses)
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("save project: %w", err)
		}

		after, _ := json.Marshal(p.StepStatuses)
		audit := models.ProjectAudit{
			ProjectID: p.ID,
			UserID:    userID,
			Action:    action,
			Step:      step,
			Before:    string(before),
			After:     string(after),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return fmt.Errorf("write audit: %w", err)
		}

		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveAnswers upserts a step's answer set via the caller's closure and
// moves the step to in_progress on first write.
func SaveAnswers(db *gorm.DB, projectID, userID uint, step workflow.StepKey, upsert func(tx *gorm.DB) error) (*models.Project, error) {
	return mutate(db, projectID, userID, ActionSave, step, func(tx *gorm.DB, p *models.Project) error {
		if !workflow.KnownStep(step) {
			return fmt.Errorf("%w: unknown step %q", apperr.ErrNotFound, step)
		}
		if !workflow.IsStepUnlocked(p.StepStatuses, step) {
			return apperr.ErrStepLocked
		}
		if err := upsert(tx); err != nil {
			return err
		}
		if p.StepStatuses.Status(step) == workflow.StatusNotStarted {
			p.StepStatuses = workflow.SetStatus(p.StepStatuses, step, workflow.StatusInProgress)
		}
		if p.Status == models.ProjectDraft {
			p.Status = models.ProjectActive
		}
		return nil
	})
}

// Submit marks the step submitted. The prepare closure validates the
// answer set (ValidationFailed on an empty one) and stamps submitted_at;
// it runs inside the same transaction, so a failed check leaves the
// ledger untouched.
func Submit(db *gorm.DB, projectID, userID uint, step workflow.StepKey, prepare func(tx *gorm.DB) error) (*models.Project, error) {
	return mutate(db, projectID, userID, ActionSubmit, step, func(tx *gorm.DB, p *models.Project) error {
		ledger, err := workflow.Submit(p.StepStatuses, step)
		if err != nil {
			return err
		}
		if prepare != nil {
			if err := prepare(tx); err != nil {
				return err
			}
		}
		p.StepStatuses = ledger
		if p.Status == models.ProjectDraft {
			p.Status = models.ProjectActive
		}
		return nil
	})
}

// Verify approves a submitted step. The conclusion step completes the
// project when approved.
func Verify(db *gorm.DB, projectID, userID uint, step workflow.StepKey) (*models.Project, error) {
	return mutate(db, projectID, userID, ActionVerify, step, func(tx *gorm.DB, p *models.Project) error {
		ledger, err := workflow.Approve(p.StepStatuses, step)
		if err != nil {
			return err
		}
		p.StepStatuses = ledger
		if step == workflow.StepConclusion {
			p.Status = models.ProjectCompleted
		}
		return nil
	})
}

// RequestRevision sends a submitted step back to in_progress.
func RequestRevision(db *gorm.DB, projectID, userID uint, step workflow.StepKey) (*models.Project, error) {
	return mutate(db, projectID, userID, ActionRequestRevision, step, func(tx *gorm.DB, p *models.Project) error {
		ledger, err := workflow.RequestRevision(p.StepStatuses, step)
		if err != nil {
			return err
		}
		p.StepStatuses = ledger
		return nil
	})
}

// FinalApprove locks every step at CEO sign-off. Requires the whole main
// chain to be submitted or later.
func FinalApprove(db *gorm.DB, projectID, userID uint) (*models.Project, error) {
	return mutate(db, projectID, userID, ActionFinalApprove, "", func(tx *gorm.DB, p *models.Project) error {
		if !workflow.AllMainStepsSettled(p.StepStatuses) {
			return apperr.ErrNotSubmitted
		}
		p.StepStatuses = workflow.LockAll(p.StepStatuses)
		p.Status = models.ProjectLocked
		return nil
	})
}

// ListAudit returns the trail oldest first.
func ListAudit(db *gorm.DB, projectID uint) ([]models.ProjectAudit, error) {
	var logs []models.ProjectAudit
	err := db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at asc").
		Find(&logs).Error
	return logs, err
}
