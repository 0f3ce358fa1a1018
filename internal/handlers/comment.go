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

type CommentHandler struct {
	commentService *services.CommentService
	taskService    *services.TaskService
	accessService  *services.AccessService
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{
		commentService: services.NewCommentService(db),
		taskService:    services.NewTaskService(db),
		accessService:  services.NewAccessService(db),
	}
}

// ListByTask returns a task's comments; member of the owning project only
// GET /api/tasks/:id/comments
func (h *CommentHandler) ListByTask(c *gin.Context) {
	task, ok := h.loadAuthorizedTask(c)
	if !ok {
		return
	}

	comments, err := h.commentService.ListByTask(task.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comments)
}

// Create adds a comment to a task with the caller as author; member only
// POST /api/tasks/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	task, ok := h.loadAuthorizedTask(c)
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.commentService.Create(&req, task.ID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, comment)
}

func (h *CommentHandler) loadAuthorizedTask(c *gin.Context) (*models.Task, bool) {
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
