package services

import (
	"errors"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// Create inserts the project together with its owner access record in a
// single transaction, so a project can never exist without an owner role.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID uint) (*models.Project, error) {
	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     ownerID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		access := models.ProjectAccess{
			ProjectID: project.ID,
			UserID:    ownerID,
			Role:      models.RoleOwner,
		}
		return tx.Create(&access).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(project.ID)
}

// GetByID returns a project with its owner and contributor list.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("Owner").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}

	contributors, err := s.contributors(project.ID)
	if err != nil {
		return nil, err
	}
	project.Contributors = contributors

	return &project, nil
}

// ListForUser returns every project the user owns or contributes to.
func (s *ProjectService) ListForUser(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.Preload("Owner").
		Where("id IN (?)", s.db.Model(&models.ProjectAccess{}).
			Select("project_id").
			Where("user_id = ? AND role IN ?", userID, []models.AccessRole{models.RoleOwner, models.RoleContributor})).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	for i := range projects {
		contributors, err := s.contributors(projects[i].ID)
		if err != nil {
			return nil, err
		}
		projects[i].Contributors = contributors
	}

	return projects, nil
}

// Update applies a partial patch: only fields present in the request
// overwrite existing values. The owner is immutable.
func (s *ProjectService) Update(project *models.Project, req *UpdateProjectRequest) (*models.Project, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(project.ID)
}

// AddContributor grants the user a contributor role on the project. Adding a
// user who already holds a role (including the owner) is a no-op.
func (s *ProjectService) AddContributor(project *models.Project, user *models.User) error {
	var count int64
	s.db.Model(&models.ProjectAccess{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&count)
	if count > 0 {
		return nil
	}

	access := models.ProjectAccess{
		ProjectID: project.ID,
		UserID:    user.ID,
		Role:      models.RoleContributor,
	}
	return s.db.Create(&access).Error
}

// contributors lists the users holding a contributor role on the project.
func (s *ProjectService) contributors(projectID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	err := s.db.Model(&models.User{}).
		Joins("JOIN project_access ON project_access.user_id = users.id").
		Where("project_access.project_id = ? AND project_access.role = ?", projectID, models.RoleContributor).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
