package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"hr-wizard/internal/config"
	"hr-wizard/internal/handlers"
	"hr-wizard/internal/middleware"
	"hr-wizard/internal/models"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("hr_wizard_session", store))

	r.Use(middleware.InjectUser())

	// AUTH
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", handlers.Logout)
	r.POST("/password-reset/request", handlers.RequestPasswordReset)
	r.POST("/password-reset/confirm", handlers.ConfirmPasswordReset)

	api := r.Group("/api")
	api.Use(middleware.RequireAuth())

	// COMPANIES
	api.GET("/companies",
		middleware.RequireRole(models.RoleAdmin),
		handlers.ListCompanies,
	)
	api.POST("/companies", handlers.CreateCompany)
	api.GET("/companies/:id", handlers.GetCompany)
	api.POST("/companies/:id/invitations", handlers.CreateInvitation)
	api.POST("/invitations/:token/accept", handlers.AcceptInvitation)

	// WORKFLOW
	api.GET("/projects/:id", handlers.GetProject)
	api.GET("/projects/:id/steps/:step", handlers.GetStepAnswers)
	api.PUT("/projects/:id/steps/:step", handlers.SaveStepAnswers)
	api.POST("/projects/:id/steps/:step/submit", handlers.SubmitStep)
	api.POST("/projects/:id/steps/:step/verify", handlers.VerifyStep)
	api.POST("/projects/:id/steps/:step/request-revision", handlers.RequestRevision)
	api.POST("/projects/:id/final-review/approve", handlers.FinalApprove)

	// COMMENTS
	api.GET("/projects/:id/steps/:step/comments", handlers.ListComments)
	api.POST("/projects/:id/steps/:step/comments", handlers.CreateComment)

	// RECOMMENDATIONS
	api.GET("/projects/:id/steps/:step/recommendations", handlers.GetRecommendations)

	// AUDIT
	api.GET("/projects/:id/audit", handlers.ListProjectAudit)

	// NOTIFICATIONS
	api.GET("/notifications", handlers.ListNotifications)
	api.POST("/notifications/:id/read", handlers.MarkNotificationRead)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
