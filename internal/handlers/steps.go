package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hr-wizard/internal/apperr"
	"hr-wizard/internal/authz"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
	"hr-wizard/internal/store"
	"hr-wizard/internal/workflow"
)

// Extension steps (job_analysis, tree, hr_policy_os) take part in the
// gating but keep their content with the presentation collaborator, so
// they carry no structured answer set here.
func hasAnswerSet(step workflow.StepKey) bool {
	switch step {
	case workflow.StepDiagnosis, workflow.StepOrganization, workflow.StepPerformance,
		workflow.StepCompensation, workflow.StepConclusion:
		return true
	}
	return false
}

// GetStepAnswers returns the step's answer set. A step behind the
// unlock gate is not readable either.
func GetStepAnswers(c *gin.Context) {
	p, ok := loadProject(c)
	if !ok {
		return
	}
	step, ok := stepParam(c)
	if !ok {
		return
	}
	actor, ok := actorFor(c, p.CompanyID)
	if !ok {
		return
	}
	if err := authz.CanRead(actor); err != nil {
		fail(c, err)
		return
	}
	if !workflow.IsStepUnlocked(p.StepStatuses, step) {
		fail(c, apperr.ErrStepLocked)
		return
	}

	var answers any
	var err error
	switch step {
	case workflow.StepDiagnosis:
		answers, err = loadAnswerSet(&models.Diagnosis{}, p.ID)
	case workflow.StepOrganization:
		answers, err = loadAnswerSet(&models.OrganizationDesign{}, p.ID)
	case workflow.StepPerformance:
		answers, err = loadAnswerSet(&models.PerformanceSystem{}, p.ID)
	case workflow.StepCompensation:
		answers, err = loadAnswerSet(&models.CompensationSystem{}, p.ID)
	case workflow.StepConclusion:
		answers, err = loadAnswerSet(&models.CeoPhilosophy{}, p.ID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load answers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"step":    step,
		"status":  p.StepStatuses.Status(step),
		"answers": answers,
	})
}

func loadAnswerSet[T any](dest *T, projectID uint) (*T, error) {
	err := database.DB.Where("project_id = ?", projectID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return dest, nil
}

// SaveStepAnswers upserts the step's answer set and moves the step to
// in_progress on first write.
func SaveStepAnswers(c *gin.Context) {
	p, ok := loadProject(c)
	if !ok {
		return
	}
	step, ok := stepParam(c)
	if !ok {
		return
	}
	if !hasAnswerSet(step) {
		c.JSON(http.StatusNotFound, gin.H{"error": "step has no answer set"})
		return
	}
	actor, ok := actorFor(c, p.CompanyID)
	if !ok {
		return
	}
	if err := authz.CanEdit(actor, p.StepStatuses.Status(step)); err != nil {
		fail(c, err)
		return
	}

	upsert, bindErr := bindStepAnswers(c, step, p.ID)
	if bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := store.SaveAnswers(database.DB, p.ID, actor.User.ID, step, upsert)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, projectPayload(updated))
}

func bindStepAnswers(c *gin.Context, step workflow.StepKey, projectID uint) (func(tx *gorm.DB) error, error) {
	switch step {
	case workflow.StepDiagnosis:
		var in models.Diagnosis
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return func(tx *gorm.DB) error { return upsertDiagnosis(tx, projectID, in) }, nil
	case workflow.StepOrganization:
		var in models.OrganizationDesign
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return func(tx *gorm.DB) error { return upsertOrganization(tx, projectID, in) }, nil
	case workflow.StepPerformance:
		var in models.PerformanceSystem
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return func(tx *gorm.DB) error { return upsertPerformance(tx, projectID, in) }, nil
	case workflow.StepCompensation:
		var in models.CompensationSystem
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return func(tx *gorm.DB) error { return upsertCompensation(tx, projectID, in) }, nil
	case workflow.StepConclusion:
		var in models.CeoPhilosophy
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, err
		}
		return func(tx *gorm.DB) error { return upsertCeoPhilosophy(tx, projectID, in) }, nil
	}
	return nil, apperr.ErrNotFound
}

func upsertDiagnosis(tx *gorm.DB, projectID uint, in models.Diagnosis) error {
	var d models.Diagnosis
	err := tx.Where("project_id = ?", projectID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		d = models.Diagnosis{ProjectID: projectID}
	} else if err != nil {
		return err
	}
	d.CompanyProfile = in.CompanyProfile
	d.PainPoints = in.PainPoints
	d.CurrentHRPractices = in.CurrentHRPractices
	d.GrowthStage = in.GrowthStage
	return tx.Save(&d).Error
}

func upsertOrganization(tx *gorm.DB, projectID uint, in models.OrganizationDesign) error {
	var o models.OrganizationDesign
	err := tx.Where("project_id = ?", projectID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		o = models.OrganizationDesign{ProjectID: projectID}
	} else if err != nil {
		return err
	}
	o.StructureType = in.StructureType
	o.Departments = in.Departments
	o.ReportingLines = in.ReportingLines
	o.JobGrades = in.JobGrades
	return tx.Save(&o).Error
}

func upsertPerformance(tx *gorm.DB, projectID uint, in models.PerformanceSystem) error {
	var p models.PerformanceSystem
	err := tx.Where("project_id = ?", projectID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.PerformanceSystem{ProjectID: projectID}
	} else if err != nil {
		return err
	}
	p.EvaluationMethod = in.EvaluationMethod
	p.KPIFramework = in.KPIFramework
	p.ReviewCycle = in.ReviewCycle
	p.FeedbackPolicy = in.FeedbackPolicy
	return tx.Save(&p).Error
}

func upsertCompensation(tx *gorm.DB, projectID uint, in models.CompensationSystem) error {
	var cs models.CompensationSystem
	err := tx.Where("project_id = ?", projectID).First(&cs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cs = models.CompensationSystem{ProjectID: projectID}
	} else if err != nil {
		return err
	}
	cs.BaseSalaryPolicy = in.BaseSalaryPolicy
	cs.PayBands = in.PayBands
	cs.BonusPolicy = in.BonusPolicy
	cs.AllowancePolicy = in.AllowancePolicy
	return tx.Save(&cs).Error
}

func upsertCeoPhilosophy(tx *gorm.DB, projectID uint, in models.CeoPhilosophy) error {
	var cp models.CeoPhilosophy
	err := tx.Where("project_id = ?", projectID).First(&cp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cp = models.CeoPhilosophy{ProjectID: projectID}
	} else if err != nil {
		return err
	}
	cp.ManagementPhilosophy = in.ManagementPhilosophy
	cp.TalentVision = in.TalentVision
	cp.CoreValues = in.CoreValues
	return tx.Save(&cp).Error
}

// submitPrepare returns the in-transaction completeness check and
// submitted_at stamp for the step's answer set. Extension steps have
// nothing to check.
func submitPrepare(step workflow.StepKey, projectID uint) func(tx *gorm.DB) error {
	if !hasAnswerSet(step) {
		return nil
	}
	return func(tx *gorm.DB) error {
		switch step {
		case workflow.StepDiagnosis:
			return requireAnswers(tx, &models.Diagnosis{}, projectID, string(step),
				func(d *models.Diagnosis) bool { return d.Empty() })
		case workflow.StepOrganization:
			return requireAnswers(tx, &models.OrganizationDesign{}, projectID, string(step),
				func(o *models.OrganizationDesign) bool { return o.Empty() })
		case workflow.StepPerformance:
			return requireAnswers(tx, &models.PerformanceSystem{}, projectID, string(step),
				func(p *models.PerformanceSystem) bool { return p.Empty() })
		case workflow.StepCompensation:
			return requireAnswers(tx, &models.CompensationSystem{}, projectID, string(step),
				func(cs *models.CompensationSystem) bool { return cs.Empty() })
		case workflow.StepConclusion:
			return requireAnswers(tx, &models.CeoPhilosophy{}, projectID, string(step),
				func(cp *models.CeoPhilosophy) bool { return cp.Empty() })
		}
		return nil
	}
}

func requireAnswers[T any](tx *gorm.DB, dest *T, projectID uint, field string, empty func(*T) bool) error {
	err := tx.Where("project_id = ?", projectID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Validation(field, "answers are required before submitting")
	}
	if err != nil {
		return err
	}
	if empty(dest) {
		return apperr.Validation(field, "answers are required before submitting")
	}
	return tx.Model(dest).Where("project_id = ?", projectID).
		Update("submitted_at", time.Now()).Error
}
