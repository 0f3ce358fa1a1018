package main

import (
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/handlers"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"github.com/taskhub/backend/pkg/logger"
)

// appServices holds the initialized dependencies needed by the route table.
type appServices struct {
	tokens         *utils.TokenManager
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	projectHandler *handlers.ProjectHandler
	taskHandler    *handlers.TaskHandler
	commentHandler *handlers.CommentHandler
}

// bootstrap initializes the database and constructs all handlers. The token
// manager is built here from configuration and injected everywhere it is
// needed; nothing reads the JWT secret from ambient state.
func bootstrap(cfg *config.Config) *appServices {
	tokens := utils.NewTokenManager(cfg.JWT)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	return &appServices{
		tokens:         tokens,
		authHandler:    handlers.NewAuthHandler(db, tokens),
		userHandler:    handlers.NewUserHandler(db),
		projectHandler: handlers.NewProjectHandler(db),
		taskHandler:    handlers.NewTaskHandler(db),
		commentHandler: handlers.NewCommentHandler(db),
	}
}
