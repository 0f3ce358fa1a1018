package services

import (
	"strings"
	"unicode/utf8"

	"github.com/taskhub/backend/internal/models"
	"github.com/taskhub/backend/pkg/response"
	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create trims and validates the text, then inserts the comment with the
// caller as author.
func (s *CommentService) Create(req *CreateCommentRequest, taskID, authorID uint) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, response.NewBadRequest("comment text cannot be empty")
	}
	// Length is bounded in characters, not bytes
	if utf8.RuneCountInString(text) > 1000 {
		return nil, response.NewBadRequest("comment text cannot exceed 1000 characters")
	}

	comment := models.Comment{
		Text:     text,
		AuthorID: authorID,
		TaskID:   taskID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByTask returns a task's comments, oldest first.
func (s *CommentService) ListByTask(taskID uint) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	err := s.db.Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
