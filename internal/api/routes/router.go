package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/handlers"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/pkg/observability"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func RegisterRoutes(r *gin.Engine, svc *application.Services) *handlers.Handlers {
	h := handlers.New(svc)

	r.Use(observability.GinMiddleware())
	observability.RegisterMetricsEndpoint(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Token status check endpoint (no group, but with JWT middleware)
	r.GET("/auth/status", middleware.JWTAuthMiddleware(), handlers.AuthStatus)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/notifications", h.Notification.StreamNotifications)

		users := auth.Group("/users")
		{
			users.GET("/me", h.User.Me)
			users.GET("", middleware.Privileged(), h.User.ListUsers)
			users.POST("", middleware.OwnerOnly(), h.User.CreateUser)
		}

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Project.GetProjects)
			projects.GET("/:id", h.Project.GetProjectByID)
			projects.GET("/:id/summary", middleware.Privileged(), h.Form.ProjectSummary)
			projects.POST("", middleware.OwnerOnly(), h.Project.CreateProject)
			projects.POST("/:id/lots", middleware.OwnerOnly(), h.Project.CreateLot)
		}

		lots := auth.Group("/lots")
		{
			lots.GET("/mine", h.Project.GetMyLots)
			lots.GET("/:id", h.Project.GetLot)
			lots.PUT("/:id/assignees", middleware.OwnerOnly(), h.Project.SetLotAssignees)
		}

		forms := auth.Group("/forms")
		{
			forms.POST("", middleware.Privileged(), h.Form.CreateForm)
			forms.GET("", h.Form.ListForms)
			forms.GET("/my-forms", h.Form.GetMyForms)
			forms.GET("/reopened", middleware.Privileged(), h.Form.ListReopened)
			forms.GET("/exists", middleware.Privileged(), h.Form.FormExists)
			forms.GET("/lot/:lotId", h.Form.ListByLot)

			forms.GET("/:id", h.Form.GetForm)
			forms.PUT("/:id", middleware.Privileged(), h.Form.UpdateFormDetails)
			forms.DELETE("/:id", middleware.Privileged(), h.Form.DeleteForm)
			forms.PUT("/:id/data", h.Form.UpdateFormData)
			forms.POST("/:id/submit", h.Form.SubmitForm)
			forms.POST("/:id/reopen", middleware.Privileged(), h.Form.ReopenForm)
			forms.POST("/:id/complete", middleware.Privileged(), h.Form.CompleteForm)
			forms.GET("/:id/history", h.Form.GetHistory)
			forms.GET("/:id/history/recent", h.Form.GetRecentHistory)
			forms.GET("/:id/download", h.Form.DownloadForm)
		}

		notifications := auth.Group("/notifications")
		{
			notifications.GET("", h.Notification.ListNotifications)
			notifications.PUT("/:id/read", h.Notification.MarkRead)
		}

		auth.GET("/audit/logs", middleware.OwnerOnly(), h.Audit.GetAuditLogs)
	}

	return h
}
