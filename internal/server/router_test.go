package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hr-wizard/internal/config"
	"hr-wizard/internal/database"
	"hr-wizard/internal/models"
	"hr-wizard/internal/workflow"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	return NewRouter(&config.Config{SessionSecret: "test-secret"})
}

func createUser(t *testing.T, email string, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := models.User{Email: email, PasswordHash: string(hash), Role: role}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

// login returns the session cookie for subsequent requests.
func login(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	body, _ := json.Marshal(gin.H{"email": email, "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookie := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookie)
	return cookie
}

func do(r *gin.Engine, method, path, cookie string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)
	w := do(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIRequiresAuth(t *testing.T) {
	r := setupRouter(t)
	w := do(r, http.MethodGet, "/api/projects/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFullWizardFlow(t *testing.T) {
	r := setupRouter(t)

	hr := createUser(t, "hr@acme.test", models.RoleHRManager)
	ceo := createUser(t, "ceo@acme.test", models.RoleCEO)
	outsider := createUser(t, "hr@other.test", models.RoleHRManager)

	hrCookie := login(t, r, hr.Email)
	ceoCookie := login(t, r, ceo.Email)
	outsiderCookie := login(t, r, outsider.Email)

	// hr creates the company; its project comes with it
	w := do(r, http.MethodPost, "/api/companies", hrCookie,
		gin.H{"name": "Acme", "industry": "manufacturing", "headcount": 120})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Company models.Company `json:"company"`
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	pid := created.Project.ID
	require.NotZero(t, pid)

	// the ceo needs a membership; take the invitation path
	w = do(r, http.MethodPost, fmt.Sprintf("/api/companies/%d/invitations", created.Company.ID),
		hrCookie, gin.H{"email": ceo.Email, "role": "ceo"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var invResp struct {
		Invitation models.Invitation `json:"invitation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invResp))

	w = do(r, http.MethodPost, "/api/invitations/"+invResp.Invitation.Token+"/accept", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	projectPath := fmt.Sprintf("/api/projects/%d", pid)

	// organization is gated until diagnosis settles
	w = do(r, http.MethodGet, projectPath+"/steps/organization", hrCookie, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// submitting without answers fails validation and changes nothing
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/submit", hrCookie, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	// save diagnosis answers
	w = do(r, http.MethodPut, projectPath+"/steps/diagnosis", hrCookie,
		gin.H{"pain_points": "high turnover", "company_profile": "120-person manufacturer"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// an hr manager from another company is forbidden
	w = do(r, http.MethodPut, projectPath+"/steps/diagnosis", outsiderCookie,
		gin.H{"pain_points": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the ceo cannot submit
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/submit", ceoCookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// submit unlocks organization for editing
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/submit", hrCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var payload struct {
		CurrentStep   workflow.StepKey             `json:"current_step"`
		StepsUnlocked map[workflow.StepKey]bool    `json:"steps_unlocked"`
		Project       struct {
			StepStatuses workflow.Ledger `json:"step_statuses"`
		} `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, workflow.StepOrganization, payload.CurrentStep)
	assert.True(t, payload.StepsUnlocked[workflow.StepOrganization])
	assert.False(t, payload.StepsUnlocked[workflow.StepPerformance])
	assert.Equal(t, workflow.StatusSubmitted, payload.Project.StepStatuses.Status(workflow.StepDiagnosis))

	// the submit notified the ceo
	w = do(r, http.MethodGet, "/api/notifications?unread=true", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifResp struct {
		Notifications []models.Notification `json:"notifications"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifResp))
	require.NotEmpty(t, notifResp.Notifications)
	assert.Equal(t, models.NotifyStepSubmitted, notifResp.Notifications[0].Type)

	// hr cannot verify; ceo can
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/verify", hrCookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/verify", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// verifying twice: no longer submitted
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/verify", ceoCookie, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// final review needs the whole main chain settled
	w = do(r, http.MethodPost, projectPath+"/final-review/approve", ceoCookie, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// walk the remaining steps
	steps := []struct {
		key     workflow.StepKey
		answers gin.H
	}{
		{workflow.StepOrganization, gin.H{"structure_type": "functional", "departments": "production, sales, admin"}},
		{workflow.StepPerformance, gin.H{"evaluation_method": "okr", "review_cycle": "semiannual"}},
		{workflow.StepCompensation, gin.H{"base_salary_policy": "market median", "pay_bands": "5 grades"}},
		{workflow.StepConclusion, gin.H{"management_philosophy": "people first", "core_values": "craft, candor"}},
	}
	for _, s := range steps {
		w = do(r, http.MethodPut, fmt.Sprintf("%s/steps/%s", projectPath, s.key), hrCookie, s.answers)
		require.Equal(t, http.StatusOK, w.Code, "save %s: %s", s.key, w.Body.String())
		w = do(r, http.MethodPost, fmt.Sprintf("%s/steps/%s/submit", projectPath, s.key), hrCookie, nil)
		require.Equal(t, http.StatusOK, w.Code, "submit %s: %s", s.key, w.Body.String())
	}

	// ceo requests revision on compensation, hr resubmits
	w = do(r, http.MethodPost, projectPath+"/steps/compensation/request-revision", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(r, http.MethodPost, projectPath+"/steps/compensation/submit", hrCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// final sign-off locks everything
	w = do(r, http.MethodPost, projectPath+"/final-review/approve", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	for _, s := range workflow.AllSteps {
		assert.Equal(t, workflow.StatusLocked, payload.Project.StepStatuses.Status(s), "step %s", s)
	}

	// a locked step rejects further edits
	w = do(r, http.MethodPut, projectPath+"/steps/diagnosis", hrCookie, gin.H{"pain_points": "late edit"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// the audit trail recorded every transition, for the ceo to review
	w = do(r, http.MethodGet, projectPath+"/audit", ceoCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var auditResp struct {
		Audit []models.ProjectAudit `json:"audit"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auditResp))
	assert.GreaterOrEqual(t, len(auditResp.Audit), 14)

	// hr managers don't get the audit view
	w = do(r, http.MethodGet, projectPath+"/audit", hrCookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCommentsAndRecommendations(t *testing.T) {
	r := setupRouter(t)

	hr := createUser(t, "hr@acme.test", models.RoleHRManager)
	consultant := createUser(t, "consult@firm.test", models.RoleConsultant)

	hrCookie := login(t, r, hr.Email)
	consultCookie := login(t, r, consultant.Email)

	w := do(r, http.MethodPost, "/api/companies", hrCookie,
		gin.H{"name": "Acme", "headcount": 30})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Company models.Company `json:"company"`
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	projectPath := fmt.Sprintf("/api/projects/%d", created.Project.ID)

	// non-member consultant is forbidden
	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/comments", consultCookie,
		gin.H{"body": "look at spans of control"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// invite the consultant in
	w = do(r, http.MethodPost, fmt.Sprintf("/api/companies/%d/invitations", created.Company.ID),
		hrCookie, gin.H{"email": consultant.Email, "role": "consultant"})
	require.Equal(t, http.StatusCreated, w.Code)
	var invResp struct {
		Invitation models.Invitation `json:"invitation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invResp))
	w = do(r, http.MethodPost, "/api/invitations/"+invResp.Invitation.Token+"/accept", consultCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, projectPath+"/steps/diagnosis/comments", consultCookie,
		gin.H{"body": "look at spans of control"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, projectPath+"/steps/diagnosis/comments", hrCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var commentsResp struct {
		Comments []models.StepComment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &commentsResp))
	require.Len(t, commentsResp.Comments, 1)
	assert.Equal(t, "look at spans of control", commentsResp.Comments[0].Body)

	// recommendations reflect the diagnosis content
	w = do(r, http.MethodPut, projectPath+"/steps/diagnosis", hrCookie,
		gin.H{"pain_points": "turnover in year one", "growth_stage": "startup"})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, projectPath+"/steps/organization/recommendations", hrCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recResp struct {
		Recommendations []struct {
			Field     string `json:"field"`
			Suggested string `json:"suggested"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recResp))
	require.NotEmpty(t, recResp.Recommendations)
	assert.Equal(t, "structure_type", recResp.Recommendations[0].Field)
	assert.Equal(t, "flat", recResp.Recommendations[0].Suggested)
}

func TestAdminCompanyOverview(t *testing.T) {
	r := setupRouter(t)

	hr := createUser(t, "hr@acme.test", models.RoleHRManager)
	admin := createUser(t, "admin@hr-wizard.local", models.RoleAdmin)

	hrCookie := login(t, r, hr.Email)
	adminCookie := login(t, r, admin.Email)

	w := do(r, http.MethodPost, "/api/companies", hrCookie, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)

	// the overview is admin-only
	w = do(r, http.MethodGet, "/api/companies", hrCookie, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/api/companies", adminCookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Companies []struct {
			CurrentStep workflow.StepKey `json:"current_step"`
		} `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, workflow.StepDiagnosis, resp.Companies[0].CurrentStep)

	// admin bypasses the step lock entirely
	var p models.Project
	require.NoError(t, database.DB.First(&p).Error)
	w = do(r, http.MethodPut, fmt.Sprintf("/api/projects/%d/steps/organization", p.ID),
		adminCookie, gin.H{"structure_type": "functional"})
	assert.Equal(t, http.StatusConflict, w.Code) // unlock gate still applies

	w = do(r, http.MethodPut, fmt.Sprintf("/api/projects/%d/steps/diagnosis", p.ID),
		adminCookie, gin.H{"pain_points": "admin fixup"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestUnknownStepIs404(t *testing.T) {
	r := setupRouter(t)
	hr := createUser(t, "hr@acme.test", models.RoleHRManager)
	cookie := login(t, r, hr.Email)

	w := do(r, http.MethodPost, "/api/companies", cookie, gin.H{"name": "Acme"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Project models.Project `json:"project"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(r, http.MethodGet, fmt.Sprintf("/api/projects/%d/steps/payroll", created.Project.ID), cookie, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
