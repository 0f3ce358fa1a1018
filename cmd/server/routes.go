package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/handlers"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Throttle for the public auth routes
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/signup", svc.authHandler.Signup)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.tokens))
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)

			// Users
			protected.GET("/users/:id", svc.userHandler.GetByID)
			protected.GET("/users/:id/projects", svc.projectHandler.ListByUser)
			protected.GET("/users/:id/tasks", svc.taskHandler.ListByAssignee)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.POST("/projects/:id/contributors/:user_id", svc.projectHandler.AddContributor)

			// Tasks
			protected.GET("/projects/:id/tasks", svc.taskHandler.ListByProject)
			protected.POST("/projects/:id/tasks", svc.taskHandler.Create)
			protected.GET("/tasks/status/:status", svc.taskHandler.ListByStatus)
			protected.GET("/tasks/:id", svc.taskHandler.GetByID)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)

			// Comments
			protected.GET("/tasks/:id/comments", svc.commentHandler.ListByTask)
			protected.POST("/tasks/:id/comments", svc.commentHandler.Create)
		}
	}
}
