package services

import (
	"errors"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db *gorm.DB
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db}
}

type CreateTaskRequest struct {
	Title          string `json:"title" binding:"required,min=1,max=200"`
	Description    string `json:"description" binding:"max=1000"`
	AssignedUserID *uint  `json:"assigned_user_id"`
}

type UpdateTaskRequest struct {
	Title       *string            `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string            `json:"description" binding:"omitempty,max=1000"`
	Status      *models.TaskStatus `json:"status" binding:"omitempty,oneof=todo in_progress done"`
	// 0 clears the assignment; user ids start at 1.
	AssignedUserID *uint `json:"assigned_user_id"`
}

// Create inserts a task into the given project. Status defaults to todo.
func (s *TaskService) Create(req *CreateTaskRequest, projectID uint) (*models.Task, error) {
	if req.AssignedUserID != nil {
		if err := s.checkUserExists(*req.AssignedUserID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Status:         models.StatusTodo,
		AssignedUserID: req.AssignedUserID,
		ProjectID:      projectID,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	return s.GetByID(task.ID)
}

// GetByID returns a task with its assignee preloaded.
func (s *TaskService) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("AssignedUser").First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("task not found")
		}
		return nil, err
	}
	return &task, nil
}

// ListByProject returns all tasks of a project.
func (s *TaskService) ListByProject(projectID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := s.db.Preload("AssignedUser").
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

// ListByAssignee returns all tasks assigned to a user, across projects.
func (s *TaskService) ListByAssignee(userID uint) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := s.db.Preload("AssignedUser").
		Where("assigned_user_id = ?", userID).
		Find(&tasks).Error
	return tasks, err
}

// ListByStatus returns all tasks in the given status, across projects.
func (s *TaskService) ListByStatus(status models.TaskStatus) ([]models.Task, error) {
	tasks := make([]models.Task, 0)
	err := s.db.Preload("AssignedUser").
		Where("status = ?", status).
		Find(&tasks).Error
	return tasks, err
}

// Update applies a partial patch: only fields present in the request
// overwrite existing values. The owning project is immutable.
func (s *TaskService) Update(task *models.Task, req *UpdateTaskRequest) (*models.Task, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, response.NewBadRequest("invalid task status")
		}
		updates["status"] = *req.Status
	}
	if req.AssignedUserID != nil {
		if *req.AssignedUserID == 0 {
			updates["assigned_user_id"] = nil
		} else {
			if err := s.checkUserExists(*req.AssignedUserID); err != nil {
				return nil, err
			}
			updates["assigned_user_id"] = *req.AssignedUserID
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetByID(task.ID)
}

// Delete removes a task. Its comments stay orphaned on purpose: no delete
// path exists for comments.
func (s *TaskService) Delete(id uint) error {
	result := s.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("task not found")
	}
	return nil
}

func (s *TaskService) checkUserExists(userID uint) error {
	var count int64
	s.db.Model(&models.User{}).Where("id = ?", userID).Count(&count)
	if count == 0 {
		return response.NewNotFound("assigned user not found")
	}
	return nil
}
