package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Per-step answer sets. Each is a 1:1 child of the project, created on
// first write and never independently deleted. The SubmittedAt stamps
// duplicate ledger information and exist for reporting queries only.

type Diagnosis struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	CompanyProfile     string `gorm:"type:text" json:"company_profile"`
	PainPoints         string `gorm:"type:text" json:"pain_points"`
	CurrentHRPractices string `gorm:"type:text" json:"current_hr_practices"`
	GrowthStage        string `gorm:"size:50" json:"growth_stage"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (d *Diagnosis) Empty() bool {
	return allBlank(d.CompanyProfile, d.PainPoints, d.CurrentHRPractices, d.GrowthStage)
}

type OrganizationDesign struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	StructureType  string `gorm:"size:50" json:"structure_type"`
	Departments    string `gorm:"type:text" json:"departments"`
	ReportingLines string `gorm:"type:text" json:"reporting_lines"`
	JobGrades      string `gorm:"type:text" json:"job_grades"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (o *OrganizationDesign) Empty() bool {
	return allBlank(o.StructureType, o.Departments, o.ReportingLines, o.JobGrades)
}

type PerformanceSystem struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	EvaluationMethod string `gorm:"size:100" json:"evaluation_method"`
	KPIFramework     string `gorm:"type:text" json:"kpi_framework"`
	ReviewCycle      string `gorm:"size:50" json:"review_cycle"`
	FeedbackPolicy   string `gorm:"type:text" json:"feedback_policy"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (p *PerformanceSystem) Empty() bool {
	return allBlank(p.EvaluationMethod, p.KPIFramework, p.ReviewCycle, p.FeedbackPolicy)
}

type CompensationSystem struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	BaseSalaryPolicy string `gorm:"type:text" json:"base_salary_policy"`
	PayBands         string `gorm:"type:text" json:"pay_bands"`
	BonusPolicy      string `gorm:"type:text" json:"bonus_policy"`
	AllowancePolicy  string `gorm:"type:text" json:"allowance_policy"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (c *CompensationSystem) Empty() bool {
	return allBlank(c.BaseSalaryPolicy, c.PayBands, c.BonusPolicy, c.AllowancePolicy)
}

// CeoPhilosophy holds the CEO's verification-step input gathered during
// the conclusion phase.
type CeoPhilosophy struct {
	gorm.Model
	ProjectID uint `gorm:"uniqueIndex;not null" json:"project_id"`

	ManagementPhilosophy string `gorm:"type:text" json:"management_philosophy"`
	TalentVision         string `gorm:"type:text" json:"talent_vision"`
	CoreValues           string `gorm:"type:text" json:"core_values"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

func (c *CeoPhilosophy) Empty() bool {
	return allBlank(c.ManagementPhilosophy, c.TalentVision, c.CoreValues)
}

func allBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
