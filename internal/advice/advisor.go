// Package advice is the recommendation collaborator: it reads project
// data and returns suggested option values for a step's form. It is
// advisory only and has no bearing on the workflow state machine.
package advice

import (
	"strings"

	"hr-wizard/internal/models"
	"hr-wizard/internal/workflow"
)

type Recommendation struct {
	Field     string `json:"field"`
	Suggested string `json:"suggested"`
	Rationale string `json:"rationale"`
}

// Advisor is the pluggable scoring backend; Default returns the
// built-in heuristic one.
type Advisor interface {
	Recommend(step workflow.StepKey, company models.Company, diag models.Diagnosis) []Recommendation
}

func Default() Advisor {
	return heuristicAdvisor{}
}

type heuristicAdvisor struct{}

func (heuristicAdvisor) Recommend(step workflow.StepKey, company models.Company, diag models.Diagnosis) []Recommendation {
	switch step {
	case workflow.StepOrganization:
		return organizationAdvice(company, diag)
	case workflow.StepPerformance:
		return performanceAdvice(company)
	case workflow.StepCompensation:
		return compensationAdvice(company, diag)
	}
	return nil
}

func organizationAdvice(company models.Company, diag models.Diagnosis) []Recommendation {
	structure := "functional"
	rationale := "small headcount keeps a functional structure manageable"
	if company.Headcount > 200 {
		structure = "divisional"
		rationale = "headcount above 200 usually outgrows a single functional chain"
	}
	if strings.Contains(strings.ToLower(diag.GrowthStage), "startup") {
		structure = "flat"
		rationale = "startup-stage companies benefit from short reporting lines"
	}
	return []Recommendation{
		{Field: "structure_type", Suggested: structure, Rationale: rationale},
	}
}

func performanceAdvice(company models.Company) []Recommendation {
	cycle := "semiannual"
	if company.Headcount <= 50 {
		cycle = "quarterly"
	}
	return []Recommendation{
		{Field: "review_cycle", Suggested: cycle, Rationale: "review frequency scaled to headcount"},
		{Field: "evaluation_method", Suggested: "okr", Rationale: "default framework for goal-driven reviews"},
	}
}

func compensationAdvice(company models.Company, diag models.Diagnosis) []Recommendation {
	recs := []Recommendation{
		{Field: "pay_bands", Suggested: "grade-based bands", Rationale: "bands follow the job grades defined in organization design"},
	}
	if strings.Contains(strings.ToLower(diag.PainPoints), "turnover") {
		recs = append(recs, Recommendation{
			Field:     "bonus_policy",
			Suggested: "retention bonus",
			Rationale: "diagnosis mentions turnover as a pain point",
		})
	}
	return recs
}
