package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter wires the full API surface against an in-memory SQLite
// database, mirroring the server's route table.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.Comment{},
		&models.ProjectAccess{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	tokens := utils.NewTokenManager(config.JWTConfig{
		Secret:        "test-secret-for-handlers",
		ExpireMinutes: 15,
	})

	authHandler := NewAuthHandler(db, tokens)
	userHandler := NewUserHandler(db)
	projectHandler := NewProjectHandler(db)
	taskHandler := NewTaskHandler(db)
	commentHandler := NewCommentHandler(db)

	r := gin.New()
	r.GET("/health", Health)

	api := r.Group("/api")
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(tokens))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.GET("/users/:id", userHandler.GetByID)
		protected.GET("/users/:id/projects", projectHandler.ListByUser)
		protected.GET("/users/:id/tasks", taskHandler.ListByAssignee)

		protected.GET("/projects", projectHandler.List)
		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects/:id", projectHandler.GetByID)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.POST("/projects/:id/contributors/:user_id", projectHandler.AddContributor)

		protected.GET("/projects/:id/tasks", taskHandler.ListByProject)
		protected.POST("/projects/:id/tasks", taskHandler.Create)
		protected.GET("/tasks/status/:status", taskHandler.ListByStatus)
		protected.GET("/tasks/:id", taskHandler.GetByID)
		protected.PUT("/tasks/:id", taskHandler.Update)
		protected.DELETE("/tasks/:id", taskHandler.Delete)

		protected.GET("/tasks/:id/comments", commentHandler.ListByTask)
		protected.POST("/tasks/:id/comments", commentHandler.Create)
	}

	return r
}

type apiResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doRequest performs a JSON request against the router; token may be empty
// for public routes.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

// signupAndLogin registers a user and returns their bearer token and id.
func signupAndLogin(t *testing.T, r *gin.Engine, username string) (string, uint) {
	t.Helper()

	email := username + "@example.com"
	w, _ := doRequest(t, r, "POST", "/api/auth/signup", "", gin.H{
		"username": username,
		"email":    email,
		"password": "pass1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("signup for %q: status %d, body %s", username, w.Code, w.Body.String())
	}

	w, resp := doRequest(t, r, "POST", "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "pass1234",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login for %q: status %d, body %s", username, w.Code, w.Body.String())
	}

	var login struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(resp.Data, &login); err != nil {
		t.Fatalf("failed to parse login data: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return login.Token, login.User.ID
}

func dataID(t *testing.T, resp apiResponse) uint {
	t.Helper()
	var out struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		t.Fatalf("failed to parse data %s: %v", resp.Data, err)
	}
	return out.ID
}
