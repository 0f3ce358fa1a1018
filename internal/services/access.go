package services

import (
	"errors"
	"fmt"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

// AccessService is the single place authorization decisions are made. Every
// handler resolves roles through it against the project_access table instead
// of recomputing membership ad hoc.
type AccessService struct {
	db *gorm.DB
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// ResolveRole returns the role a user holds on a project, or RoleNone when no
// access record exists.
func (s *AccessService) ResolveRole(projectID, userID uint) (models.AccessRole, error) {
	var access models.ProjectAccess
	err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&access).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoleNone, nil
	}
	if err != nil {
		return models.RoleNone, err
	}
	return access.Role, nil
}

// AuthorizeProjectAccess returns nil iff the user is the owner or a
// contributor of the project. Denials name the required role and the owner so
// the caller knows whom to contact.
func (s *AccessService) AuthorizeProjectAccess(project *models.Project, userID uint) error {
	role, err := s.ResolveRole(project.ID, userID)
	if err != nil {
		return err
	}
	if role == models.RoleOwner || role == models.RoleContributor {
		return nil
	}
	return response.NewForbidden(fmt.Sprintf(
		"access denied: you must be the owner or a contributor of project '%s'; contact the project owner (%s) to request access",
		project.Title, s.ownerName(project)))
}

// AuthorizeProjectMutation returns nil iff the user is the project owner.
// Contributors may read and work with tasks but not touch project metadata.
func (s *AccessService) AuthorizeProjectMutation(project *models.Project, userID uint) error {
	role, err := s.ResolveRole(project.ID, userID)
	if err != nil {
		return err
	}
	if role == models.RoleOwner {
		return nil
	}
	return response.NewForbidden(fmt.Sprintf(
		"access denied: only the project owner (%s) can modify project '%s'",
		s.ownerName(project), project.Title))
}

// AuthorizeTaskAccess resolves the task's project and delegates to
// AuthorizeProjectAccess. The resolved project is returned so callers don't
// load it twice.
func (s *AccessService) AuthorizeTaskAccess(task *models.Task, userID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, task.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	if err := s.AuthorizeProjectAccess(&project, userID); err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *AccessService) ownerName(project *models.Project) string {
	if project.Owner != nil {
		return project.Owner.Username
	}
	var owner models.User
	if err := s.db.First(&owner, project.OwnerID).Error; err != nil {
		return "unknown"
	}
	return owner.Username
}
