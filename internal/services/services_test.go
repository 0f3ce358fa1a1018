package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/taskhub/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory SQLite database for one test.
// The DSN is keyed by test name so parallel packages don't share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
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

	return db
}

// createTestUser inserts a user directly; the password hash is a placeholder
// since most tests never log in.
func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return &user
}

// createTestProject inserts a project owned by the given user, including the
// owner access row, mirroring what ProjectService.Create does.
func createTestProject(t *testing.T, db *gorm.DB, title string, ownerID uint) *models.Project {
	t.Helper()

	project := models.Project{Title: title, OwnerID: ownerID}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project %q: %v", title, err)
	}
	access := models.ProjectAccess{ProjectID: project.ID, UserID: ownerID, Role: models.RoleOwner}
	if err := db.Create(&access).Error; err != nil {
		t.Fatalf("failed to create owner access row: %v", err)
	}
	return &project
}
