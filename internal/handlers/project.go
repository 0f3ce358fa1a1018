package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/backend/internal/middleware"
	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/internal/services"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	accessService  *services.AccessService
	db             *gorm.DB
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
		accessService:  services.NewAccessService(db),
		db:             db,
	}
}

// List returns the caller's projects (owned or contributed)
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.ListForUser(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// GetByID returns a project the caller is a member of
// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeProjectAccess(project, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Create creates a project owned by the caller
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(&req, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, project)
}

// Update applies a partial patch; owner only
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeProjectMutation(project, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.projectService.Update(project, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, updated)
}

// AddContributor grants contributor access; owner only
// POST /api/projects/:id/contributors/:user_id
func (h *ProjectHandler) AddContributor(c *gin.Context) {
	project, ok := h.loadProject(c)
	if !ok {
		return
	}

	if err := h.accessService.AuthorizeProjectMutation(project, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		response.NotFound(c, "user not found")
		return
	}

	if err := h.projectService.AddContributor(project, &user); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": fmt.Sprintf("user '%s' added as a contributor to project '%s'", user.Username, project.Title),
	})
}

// ListByUser returns another user's projects, filtered to those the caller
// can access
// GET /api/users/:id/projects
func (h *ProjectHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	projects, err := h.projectService.ListForUser(uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	callerID := middleware.GetUserID(c)
	accessible := make([]models.Project, 0, len(projects))
	for i := range projects {
		if err := h.accessService.AuthorizeProjectAccess(&projects[i], callerID); err == nil {
			accessible = append(accessible, projects[i])
		}
	}

	response.Success(c, accessible)
}

func (h *ProjectHandler) loadProject(c *gin.Context) (*models.Project, bool) {
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
	return project, true
}
