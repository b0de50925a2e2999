// Package notify writes in-app notifications after a workflow
// transition commits. Dispatch is best-effort: failures are logged and
// never surfaced, so a broken notification can't undo a transition.
package notify

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"hr-wizard/internal/models"
	"hr-wizard/internal/store"
	"hr-wizard/internal/workflow"
)

func deliver(db *gorm.DB, users []models.User, skipUserID uint, n models.Notification) {
	for _, u := range users {
		if u.ID == skipUserID {
			continue
		}
		row := n
		row.UserID = u.ID
		if err := db.Create(&row).Error; err != nil {
			log.Printf("notify: failed to create notification for user %d: %v", u.ID, err)
		}
	}
}

// StepSubmitted tells the company's CEOs a step awaits their review.
func StepSubmitted(db *gorm.DB, p *models.Project, step workflow.StepKey, actorID uint) {
	ceos, err := store.CompanyMembers(db, p.CompanyID, models.RoleCEO)
	if err != nil {
		log.Printf("notify: failed to load CEOs for company %d: %v", p.CompanyID, err)
		return
	}
	deliver(db, ceos, actorID, models.Notification{
		ProjectID: p.ID,
		Type:      models.NotifyStepSubmitted,
		Step:      step,
		Message:   fmt.Sprintf("Step %q was submitted and awaits verification", step),
	})
}

// StepVerified tells the HR managers the step was approved.
func StepVerified(db *gorm.DB, p *models.Project, step workflow.StepKey, actorID uint) {
	hrs, err := store.CompanyMembers(db, p.CompanyID, models.RoleHRManager)
	if err != nil {
		log.Printf("notify: failed to load HR managers for company %d: %v", p.CompanyID, err)
		return
	}
	deliver(db, hrs, actorID, models.Notification{
		ProjectID: p.ID,
		Type:      models.NotifyStepVerified,
		Step:      step,
		Message:   fmt.Sprintf("Step %q was verified; the next step is unlocked", step),
	})
}

// RevisionRequested tells the HR managers the step came back.
func RevisionRequested(db *gorm.DB, p *models.Project, step workflow.StepKey, actorID uint) {
	hrs, err := store.CompanyMembers(db, p.CompanyID, models.RoleHRManager)
	if err != nil {
		log.Printf("notify: failed to load HR managers for company %d: %v", p.CompanyID, err)
		return
	}
	deliver(db, hrs, actorID, models.Notification{
		ProjectID: p.ID,
		Type:      models.NotifyRevisionRequested,
		Step:      step,
		Message:   fmt.Sprintf("Step %q needs revision", step),
	})
}

// ProjectLocked tells every member the design is final.
func ProjectLocked(db *gorm.DB, p *models.Project, actorID uint) {
	members, err := store.CompanyMembers(db, p.CompanyID)
	if err != nil {
		log.Printf("notify: failed to load members for company %d: %v", p.CompanyID, err)
		return
	}
	deliver(db, members, actorID, models.Notification{
		ProjectID: p.ID,
		Type:      models.NotifyProjectLocked,
		Message:   "The HR system design was approved and locked",
	})
}
