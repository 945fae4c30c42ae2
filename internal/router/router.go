package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhive-dev/taskhive/internal/handlers"
	"github.com/taskhive-dev/taskhive/internal/middleware"
	"github.com/taskhive-dev/taskhive/internal/storage"
	"github.com/taskhive-dev/taskhive/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Uploaded files (profile pictures) are served straight off disk.
	r.Static("/storage", storage.Dir())

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)

		authenticated := api.Group("", middleware.AuthMiddleware())
		{
			authenticated.POST("/logout", handlers.Logout)
			authenticated.GET("/user", handlers.Me)
			authenticated.PUT("/user/profile", handlers.UpdateProfile)
			authenticated.PUT("/user/password", handlers.UpdatePassword)
			authenticated.POST("/user/profile-picture", handlers.UploadProfilePicture)
			authenticated.DELETE("/user/profile-picture", handlers.RemoveProfilePicture)
			authenticated.DELETE("/profile", handlers.DeleteAccount)

			projects := authenticated.Group("/projects")
			{
				projects.POST("", handlers.CreateProject)
				projects.GET("", handlers.ListProjects)
				projects.GET("/:project_id", handlers.GetProject)
				projects.PUT("/:project_id", handlers.UpdateProject)
				projects.DELETE("/:project_id", handlers.DeleteProject)

				projects.POST("/:project_id/invite", handlers.InviteMember)
				projects.DELETE("/:project_id/members/:user_id", handlers.RemoveMember)

				projects.GET("/:project_id/tasks", handlers.ListProjectTasks)
				projects.POST("/:project_id/tasks", handlers.CreateTask)
				projects.GET("/:project_id/tasks/:task_id", handlers.GetTask)
				projects.PUT("/:project_id/tasks/:task_id", handlers.UpdateTask)
				projects.DELETE("/:project_id/tasks/:task_id", handlers.DeleteTask)
			}

			authenticated.GET("/tasks", handlers.ListUserTasks)

			invitations := authenticated.Group("/invitations")
			{
				invitations.GET("", handlers.ListInvitations)
				invitations.POST("/:invitation_id/accept", handlers.AcceptInvitation)
				invitations.POST("/:invitation_id/decline", handlers.DeclineInvitation)
			}

			notifications := authenticated.Group("/notifications")
			{
				notifications.GET("", handlers.ListNotifications)
				// Mark-all lives on the collection itself; a static
				// sibling of :notification_id would not route.
				notifications.PUT("", handlers.MarkAllNotificationsRead)
				notifications.PUT("/:notification_id/read", handlers.MarkNotificationRead)
			}

			authenticated.GET("/dashboard/stats", handlers.GetDashboardStats)
		}
	}

	return r
}
