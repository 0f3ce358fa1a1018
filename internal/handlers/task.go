package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService    *services.TaskService
	projectService *services.ProjectService
	accessService  *services.AccessService
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{
		taskService:    services.NewTaskService(db),
		projectService: services.NewProjectService(db),
		accessService:  services.NewAccessService(db),
	}
}

// ListByProject returns a project's tasks; member only
// GET /api/projects/:id/tasks
func (h *TaskHandler) ListByProject(c *gin.Context) {
	project, ok := h.loadAuthorizedProject(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(project.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create adds a task to a project; member only
// POST /api/projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	project, ok := h.loadAuthorizedProject(c)
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.Create(&req, project.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, task)
}

// GetByID returns a task; member of the owning project only
// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	task, ok := h.loadAuthorizedTask(c)
	if !ok {
		return
	}

	response.Success(c, task)
}

// Update applies a partial patch to a task; member only
// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	task, ok := h.loadAuthorizedTask(c)
	if !ok {
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.taskService.Update(task, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, updated)
}

// Delete removes a task; member only
// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	task, ok := h.loadAuthorizedTask(c)
	if !ok {
		return
	}

	if err := h.taskService.Delete(task.ID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "task deleted successfully"})
}

// ListByStatus returns tasks in the given status from projects the caller
// can access
// GET /api/tasks/status/:status
func (h *TaskHandler) ListByStatus(c *gin.Context) {
	status := models.TaskStatus(c.Param("status"))
	if !status.Valid() {
		response.BadRequest(c, "invalid task status")
		return
	}

	tasks, err := h.taskService.ListByStatus(status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, h.filterAccessible(c, tasks))
}

// ListByAssignee returns tasks assigned to a user, filtered to projects the
// caller can access
// GET /api/users/:id/tasks
func (h *TaskHandler) ListByAssignee(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	tasks, err := h.taskService.ListByAssignee(uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, h.filterAccessible(c, tasks))
}

// filterAccessible keeps only tasks whose project the caller is a member of.
func (h *TaskHandler) filterAccessible(c *gin.Context, tasks []models.Task) []models.Task {
	callerID := middleware.GetUserID(c)
	accessible := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if _, err := h.accessService.AuthorizeTaskAccess(&tasks[i], callerID); err == nil {
			accessible = append(accessible, tasks[i])
		}
	}
	return accessible
}

func (h *TaskHandler) loadAuthorizedProject(c *gin.Context) (*models.Project, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return nil, false
	}

	project, err := h.projectService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	if err := h.accessService.AuthorizeProjectAccess(project, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return project, true
}

func (h *TaskHandler) loadAuthorizedTask(c *gin.Context) (*models.Task, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return nil, false
	}

	task, err := h.taskService.GetByID(uint(id))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	if _, err := h.accessService.AuthorizeTaskAccess(task, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return task, true
}
