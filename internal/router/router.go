package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/handler"
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/middleware"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        string
	AuthHandler      *handler.AuthHandler
	ClassHandler     *handler.ClassHandler
	ProjectHandler   *handler.ProjectHandler
	TeamHandler      *handler.TeamHandler
	TaskHandler      *handler.TaskHandler
	SettingHandler   *handler.SettingHandler
	DashboardHandler *handler.DashboardHandler
	LogHandler       *handler.LogHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api/v1")

	// Public routes (no auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB))
	{
		// Auth
		authed.GET("/auth/me", deps.AuthHandler.GetMe)
		authed.PUT("/auth/me", deps.AuthHandler.UpdateMe)
		authed.POST("/auth/refresh", deps.AuthHandler.RefreshToken)

		// User search (all authenticated users)
		authed.GET("/users/search", deps.AuthHandler.SearchUsers)

		// Admin routes
		admin := authed.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/users", deps.AuthHandler.ListUsers)
			admin.PUT("/users/:id/admin", deps.AuthHandler.SetUserAdmin)
			admin.GET("/operation-logs", deps.LogHandler.List)
		}

		// Classes
		classes := authed.Group("/classes")
		{
			classes.POST("", deps.ClassHandler.Create)
			classes.GET("", deps.ClassHandler.List)
			classes.GET("/:id", deps.ClassHandler.GetDetail)
			classes.PUT("/:id", deps.ClassHandler.Update)
			classes.DELETE("/:id", deps.ClassHandler.Delete)
			classes.POST("/:id/roles", deps.ClassHandler.AssignRole)
			classes.DELETE("/:id/roles/:user_id", deps.ClassHandler.RemoveRole)

			// Projects under classes
			classes.POST("/:id/projects", deps.ProjectHandler.Create)
			classes.GET("/:id/projects", deps.ProjectHandler.List)
		}

		// Projects (standalone)
		projects := authed.Group("/projects")
		{
			projects.GET("/:id", deps.ProjectHandler.GetDetail)
			projects.PUT("/:id", deps.ProjectHandler.Update)
			projects.DELETE("/:id", deps.ProjectHandler.Delete)

			// Teams under projects
			projects.POST("/:id/teams", deps.TeamHandler.Create)
			projects.GET("/:id/teams", deps.TeamHandler.List)
		}

		// Teams
		teams := authed.Group("/teams")
		{
			teams.GET("/:id", deps.TeamHandler.GetDetail)
			teams.DELETE("/:id", deps.TeamHandler.Delete)
			teams.POST("/:id/members", deps.TeamHandler.AddMembers)
			teams.DELETE("/:id/members/:user_id", deps.TeamHandler.RemoveMember)

			// Task views per team
			teams.GET("/:id/tasks", deps.TaskHandler.TeamTree)
			teams.GET("/:id/timeline", deps.TaskHandler.Timeline)
		}

		// Tasks
		tasks := authed.Group("/tasks")
		{
			tasks.POST("", deps.TaskHandler.Create)
			tasks.GET("/:id", deps.TaskHandler.GetDetail)
			tasks.PUT("/:id", deps.TaskHandler.Update)
			tasks.DELETE("/:id", deps.TaskHandler.Delete)
		}

		// Solution event stream
		authed.GET("/solutions/:id/events", deps.TaskHandler.Events)

		// Settings
		settings := authed.Group("/settings")
		{
			settings.GET("/timeline", deps.SettingHandler.GetTimeline)
			settings.PUT("/timeline", deps.SettingHandler.UpdateTimeline)
		}

		// Dashboard
		dashboard := authed.Group("/dashboard")
		{
			dashboard.GET("/stats", deps.DashboardHandler.GetStats)
			dashboard.GET("/my-tasks", deps.DashboardHandler.GetMyTasks)
		}
	}
}
