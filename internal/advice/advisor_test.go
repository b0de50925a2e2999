package advice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-wizard/internal/models"
	"hr-wizard/internal/workflow"
)

func TestOrganizationAdviceScalesWithHeadcount(t *testing.T) {
	a := Default()

	recs := a.Recommend(workflow.StepOrganization, models.Company{Headcount: 30}, models.Diagnosis{})
	require.Len(t, recs, 1)
	assert.Equal(t, "functional", recs[0].Suggested)

	recs = a.Recommend(workflow.StepOrganization, models.Company{Headcount: 500}, models.Diagnosis{})
	require.Len(t, recs, 1)
	assert.Equal(t, "divisional", recs[0].Suggested)

	recs = a.Recommend(workflow.StepOrganization, models.Company{Headcount: 500},
		models.Diagnosis{GrowthStage: "Startup"})
	require.Len(t, recs, 1)
	assert.Equal(t, "flat", recs[0].Suggested)
}

func TestCompensationAdvicePicksUpTurnover(t *testing.T) {
	a := Default()

	recs := a.Recommend(workflow.StepCompensation, models.Company{},
		models.Diagnosis{PainPoints: "high Turnover among juniors"})
	require.Len(t, recs, 2)
	assert.Equal(t, "bonus_policy", recs[1].Field)
	assert.Equal(t, "retention bonus", recs[1].Suggested)
}

func TestNoAdviceForUnscoredSteps(t *testing.T) {
	a := Default()
	assert.Nil(t, a.Recommend(workflow.StepDiagnosis, models.Company{}, models.Diagnosis{}))
	assert.Nil(t, a.Recommend(workflow.StepConclusion, models.Company{}, models.Diagnosis{}))
}
